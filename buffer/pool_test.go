package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolObtainRelease(t *testing.T) {
	p := NewPool(1024, 4)

	b := p.Obtain()
	require.NotNil(t, b)
	assert.Equal(t, 1024, b.Capacity())
	assert.Zero(t, b.Len())
	assert.NotEmpty(t, b.ID())
	assert.Equal(t, 1024*8, b.MemoryBytes())

	n := b.Write([]float64{1, 2, 3})
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, b.Len())

	p.Release(b)
	assert.Zero(t, b.Len())
	assert.Equal(t, 1, p.Free())
}

func TestPoolExhaustion(t *testing.T) {
	p := NewPool(256, 2)

	a := p.Obtain()
	b := p.Obtain()
	require.NotNil(t, a)
	require.NotNil(t, b)

	// At capacity with everything lent out
	assert.Nil(t, p.Obtain())

	p.Release(a)
	c := p.Obtain()
	assert.NotNil(t, c)
	assert.Equal(t, a.ID(), c.ID())
}

func TestPoolLiveInvariant(t *testing.T) {
	const capacity = 3
	p := NewPool(128, capacity)

	for i := 0; i < 100; i++ {
		buffers := make([]*ManagedBuffer, 0, capacity)
		for {
			b := p.Obtain()
			if b == nil {
				break
			}
			buffers = append(buffers, b)
		}
		assert.LessOrEqual(t, p.Live(), capacity)

		for _, b := range buffers {
			b.Write([]float64{1, 2, 3, 4})
			p.Release(b)
			assert.Zero(t, b.Len())
		}
		assert.LessOrEqual(t, p.Live(), capacity)
	}

	assert.Equal(t, capacity, p.Capacity())
}

func TestPoolWriteTruncatesToCapacity(t *testing.T) {
	p := NewPool(4, 1)

	b := p.Obtain()
	require.NotNil(t, b)

	n := b.Write([]float64{1, 2, 3, 4, 5, 6})
	assert.Equal(t, 4, n)
	assert.Equal(t, []float64{1, 2, 3, 4}, b.Samples())
}

func TestPoolReleaseNil(t *testing.T) {
	p := NewPool(128, 2)
	p.Release(nil)
	assert.Zero(t, p.Free())
}
