package iso8583

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessagePool_AcquireRelease(t *testing.T) {
	require := require.New(t)

	pool := NewMessagePool(2)
	require.Equal(0, pool.Len())
	require.Equal(2, pool.Cap())

	m := pool.Acquire()
	m.SetMTI("0100")
	m.SetField(11, "000001")

	pool.Release(m)
	require.Equal(1, pool.Len())

	// the recycled instance comes back empty
	m2 := pool.Acquire()
	require.Same(m, m2)
	require.Empty(m2.MTI())
	require.Empty(m2.FieldNumbers())
	require.Equal(0, pool.Len())
}

func TestMessagePool_CapBound(t *testing.T) {
	require := require.New(t)

	pool := NewMessagePool(1)
	pool.Release(pool.Acquire())
	pool.Release(pool.Acquire())
	pool.Release(&Message{fields: map[int]string{}})
	require.Equal(1, pool.Len())

	pool.Release(nil) // no-op
	require.Equal(1, pool.Len())

	pool.Clear()
	require.Equal(0, pool.Len())
}

func TestMessagePool_Concurrent(t *testing.T) {
	require := require.New(t)

	pool := NewMessagePool(8)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m := pool.Acquire()
				m.SetField(11, "000001")
				pool.Release(m)
			}
		}()
	}
	wg.Wait()

	require.LessOrEqual(pool.Len(), 8)
}
