package encbox

import (
	"sync"
	"testing"

	"github.com/saylorsolutions/encbox/pkg/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShared_Basic(t *testing.T) {
	s, err := NewShared([4]int32{})
	require.NoError(t, err)
	defer s.Release()

	prev, loaded := s.Set([4]int32{1, 2, 3, 4})
	assert.True(t, loaded)
	assert.Equal(t, [4]int32{}, prev)
	assert.Equal(t, [4]int32{1, 2, 3, 4}, s.Get())
	assert.NotEqual(t, plainBytes([4]int32{1, 2, 3, 4}), bytesOf(s.cell.data))
}

func TestShared_CloneSeesSet(t *testing.T) {
	s, err := NewShared(uint32(1))
	require.NoError(t, err)
	c := s.Clone()
	assert.Equal(t, int64(2), s.Handles())

	_, _ = s.Set(2)
	assert.Equal(t, uint32(2), c.Get())
	prev, _ := c.Set(3)
	assert.Equal(t, uint32(2), prev)
	assert.Equal(t, uint32(3), s.Get())

	s.Release()
	assert.Equal(t, int64(1), c.Handles())
	assert.Equal(t, uint32(3), c.Get(), "Value should survive while a handle remains")
	c.Release()
}

func TestShared_Released(t *testing.T) {
	s, err := NewShared(uint32(1))
	require.NoError(t, err)
	c := s.Clone()
	s.Release()
	s.Release()
	assert.Equal(t, int64(1), c.Handles(), "Double release should be ignored")

	_, err = s.Load()
	assert.ErrorIs(t, err, ErrReleased)
	assert.PanicsWithValue(t, ErrReleased, func() {
		s.Set(5)
	})
	assert.PanicsWithValue(t, ErrReleased, func() {
		s.Clone()
	})

	stored := c.cell.data
	c.Release()
	assert.Zero(t, *stored, "Last release should wipe the value")
	assert.Nil(t, c.cell.data)
}

func TestShared_ZeroValue(t *testing.T) {
	var s Shared[uint64]
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotConstructed)
	assert.PanicsWithValue(t, ErrNotConstructed, func() {
		s.Set(0x1122334455667788)
	})
	assert.PanicsWithValue(t, ErrNotConstructed, func() {
		s.Clone()
	})
	assert.Equal(t, int64(0), s.Handles())
	assert.NotPanics(t, s.Release)
}

func TestShared_Empty(t *testing.T) {
	s, err := EmptyShared[uint64](keys.Tag("shared"))
	require.NoError(t, err)
	defer s.Release()
	c := s.Clone()
	defer c.Release()

	_, err = c.Load()
	assert.ErrorIs(t, err, ErrUninitialized)

	_, loaded := s.Set(10)
	assert.False(t, loaded)
	assert.Equal(t, uint64(10), c.Get())
}

func TestShared_FirstSetRace(t *testing.T) {
	const handles = 8
	s, err := EmptyShared[uint64]("race")
	require.NoError(t, err)
	defer s.Release()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		initial int
		prevs   []uint64
	)
	for i := 0; i < handles; i++ {
		c := s.Clone()
		wg.Add(1)
		go func(v uint64) {
			defer wg.Done()
			defer c.Release()
			prev, loaded := c.Set(v)
			mu.Lock()
			defer mu.Unlock()
			if !loaded {
				initial++
				return
			}
			prevs = append(prevs, prev)
		}(uint64(i + 1))
	}
	wg.Wait()
	assert.Equal(t, 1, initial, "Exactly one Set should initialize the container")
	assert.Len(t, prevs, handles-1)
	for _, p := range prevs {
		assert.NotZero(t, p)
	}
}

func TestShared_ConcurrentHandles(t *testing.T) {
	s, err := NewShared([8]uint64{})
	require.NoError(t, err)
	defer s.Release()

	var (
		wg     sync.WaitGroup
		clones []*Shared[[8]uint64]
	)
	for i := 0; i < 4; i++ {
		c := s.Clone()
		clones = append(clones, c)
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := uint64(0); j < 500; j++ {
				c.Set([8]uint64{j, j, j, j, j, j, j, j})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				v := c.Get()
				for _, e := range v {
					assert.Equal(t, v[0], e)
				}
			}
		}()
	}
	wg.Wait()
	for _, c := range clones {
		c.Release()
	}
	assert.Equal(t, int64(1), s.Handles())
}
