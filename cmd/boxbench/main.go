package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/saylorsolutions/encbox/cmd/internal"
	"github.com/saylorsolutions/encbox/pkg/keys"
	flag "github.com/spf13/pflag"
)

var version = "dev"

func main() {
	var (
		helpFlag     bool
		readersFlag  int
		writersFlag  int
		durationFlag time.Duration
		timeoutFlag  time.Duration
		variantFlag  string
		tagFlag      string
		levelFlag    string
	)
	flags := flag.NewFlagSet("boxbench", flag.ContinueOnError)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.IntVarP(&readersFlag, "readers", "r", 4, "Number of concurrent readers.")
	flags.IntVarP(&writersFlag, "writers", "w", 1, "Number of concurrent writers.")
	flags.DurationVarP(&durationFlag, "duration", "d", 2*time.Second, "How long to run.")
	flags.DurationVarP(&timeoutFlag, "timeout", "t", 50*time.Millisecond, "Admission timeout for each operation, 0 waits indefinitely. Ignored by the shared variant.")
	flags.StringVarP(&variantFlag, "variant", "V", "box", "Container variant to exercise: box, shared, or ptr.")
	flags.StringVarP(&tagFlag, "tag", "k", "", "Use the deterministic key for this tag instead of a random key.")
	flags.StringVarP(&levelFlag, "log-level", "l", "info", "Log level: debug, info, warn, or error.")
	flags.Usage = func() {
		internal.Echo(`
boxbench (version %s) drives concurrent readers and writers against an encbox container, and checks that no reader ever observes a torn value.
Every written value has all elements equal, so a read with unequal elements means a write was interleaved with it.

USAGE:  boxbench [FLAGS]

FLAGS:
%s
Exits with code 1 if any torn read was observed.
`, version, flags.FlagUsages())
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		internal.Echo("Error parsing flags: %v", err)
		os.Exit(1)
	}
	if helpFlag {
		flags.Usage()
		return
	}

	level, err := zerolog.ParseLevel(levelFlag)
	if err != nil {
		internal.Echo("Invalid log level '%s': %v", levelFlag, err)
		os.Exit(1)
	}
	log := internal.NewLogger(os.Stdout, "boxbench", level)

	if readersFlag < 0 || writersFlag < 0 || readersFlag+writersFlag == 0 {
		internal.Fatal(log, fmt.Errorf("readers=%d writers=%d", readersFlag, writersFlag), "At least one reader or writer is required")
	}
	if durationFlag <= 0 {
		internal.Fatal(log, fmt.Errorf("duration=%s", durationFlag), "Duration must be positive")
	}
	if err := keys.Init(); err != nil {
		internal.Fatal(log, err, "Failed to initialize key source")
	}
	tgt, err := newTarget(variantFlag, keys.Tag(tagFlag))
	if err != nil {
		internal.Fatal(log, err, "Failed to create container")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().
		Str("variant", variantFlag).
		Int("readers", readersFlag).
		Int("writers", writersFlag).
		Dur("duration", durationFlag).
		Dur("timeout", timeoutFlag).
		Bool("tagged", len(tagFlag) > 0).
		Msg("Starting")
	st := run(ctx, log, tgt, benchConfig{
		readers:  readersFlag,
		writers:  writersFlag,
		duration: durationFlag,
		timeout:  timeoutFlag,
	})
	if err := tgt.close(); err != nil {
		log.Error().Err(err).Msg("Failed to destroy container")
	}
	if st.torn.Load() > 0 {
		st.event(log.Error()).Msg("Torn reads observed")
		os.Exit(1)
	}
	st.event(log.Info()).Msg("Finished")
}
