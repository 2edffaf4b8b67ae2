package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/saylorsolutions/encbox/pkg/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTorn(t *testing.T) {
	assert.False(t, torn(uniform(7)))
	p := uniform(7)
	p[3] = 8
	assert.True(t, torn(p))
}

func TestNewTarget_Unknown(t *testing.T) {
	_, err := newTarget("heap", "")
	assert.ErrorIs(t, err, ErrUnknownVariant)
	_, err = newTarget("box", " ")
	assert.ErrorIs(t, err, keys.ErrEmptyTag)
}

func TestRun(t *testing.T) {
	cfg := benchConfig{
		readers:  4,
		writers:  2,
		duration: 100 * time.Millisecond,
		timeout:  20 * time.Millisecond,
	}
	for _, variant := range []string{"box", "shared", "ptr"} {
		for _, tag := range []keys.Tag{"", "bench"} {
			t.Run(variant+"/"+string(tag), func(t *testing.T) {
				tgt, err := newTarget(variant, tag)
				require.NoError(t, err)
				st := run(context.Background(), zerolog.Nop(), tgt, cfg)
				assert.NoError(t, tgt.close())
				assert.Zero(t, st.torn.Load())
				assert.Zero(t, st.failures.Load())
				assert.Positive(t, st.reads.Load())
				assert.Positive(t, st.writes.Load())
			})
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	tgt, err := newTarget("box", "")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := run(ctx, zerolog.Nop(), tgt, benchConfig{readers: 1, writers: 1, duration: time.Second})
	assert.NoError(t, tgt.close())
	assert.Zero(t, st.reads.Load())
	assert.Zero(t, st.writes.Load())
}
