package main

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/saylorsolutions/encbox/pkg/guard"
)

type benchConfig struct {
	readers  int
	writers  int
	duration time.Duration
	timeout  time.Duration
}

type stats struct {
	reads    atomic.Int64
	writes   atomic.Int64
	torn     atomic.Int64
	timeouts atomic.Int64
	failures atomic.Int64
}

func (s *stats) event(e *zerolog.Event) *zerolog.Event {
	return e.
		Int64("reads", s.reads.Load()).
		Int64("writes", s.writes.Load()).
		Int64("torn", s.torn.Load()).
		Int64("timeouts", s.timeouts.Load()).
		Int64("failures", s.failures.Load())
}

func (s *stats) record(log zerolog.Logger, err error) {
	switch {
	case err == nil:
	case errors.Is(err, guard.ErrAdmissionTimeout):
		s.timeouts.Add(1)
	default:
		s.failures.Add(1)
		log.Error().Err(err).Msg("Operation failed")
	}
}

// run drives readers and writers against tgt until cfg.duration has passed or ctx is done.
func run(ctx context.Context, log zerolog.Logger, tgt target, cfg benchConfig) *stats {
	var (
		st = new(stats)
		wg sync.WaitGroup
	)
	ctx, cancel := context.WithTimeout(ctx, cfg.duration)
	defer cancel()

	opCtx := func() (context.Context, context.CancelFunc) {
		if cfg.timeout <= 0 {
			return context.WithCancel(ctx)
		}
		return context.WithTimeout(ctx, cfg.timeout)
	}

	for i := 0; i < cfg.readers; i++ {
		h := tgt.handle()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer h.release()
			for ctx.Err() == nil {
				octx, ocancel := opCtx()
				p, err := h.get(octx)
				ocancel()
				if err != nil {
					st.record(log, err)
					continue
				}
				st.reads.Add(1)
				if torn(p) {
					st.torn.Add(1)
					log.Error().Uints64("value", p[:]).Msg("Torn read")
				}
			}
		}()
	}
	for i := 0; i < cfg.writers; i++ {
		h := tgt.handle()
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			defer h.release()
			for n := seed; ctx.Err() == nil; n += uint64(cfg.writers) {
				octx, ocancel := opCtx()
				err := h.set(octx, uniform(n))
				ocancel()
				if err != nil {
					st.record(log, err)
					continue
				}
				st.writes.Add(1)
			}
		}(uint64(i + 1))
	}
	wg.Wait()
	return st
}
