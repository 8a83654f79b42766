package buffer

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNoBuffer is returned by callers that treat pool exhaustion as a
// skippable condition. Obtain itself signals exhaustion with a nil buffer.
var ErrNoBuffer = errors.New("no buffer available")

// ManagedBuffer is a reusable fixed-capacity sample container. While idle
// it belongs to the pool; between Obtain and Release it belongs to exactly
// one caller.
type ManagedBuffer struct {
	id        string
	samples   []float64
	createdAt time.Time
	lastUsed  time.Time
}

func newManagedBuffer(capacity int) *ManagedBuffer {
	now := time.Now()
	return &ManagedBuffer{
		id:        uuid.NewString(),
		samples:   make([]float64, 0, capacity),
		createdAt: now,
		lastUsed:  now,
	}
}

// ID returns the buffer's identity
func (b *ManagedBuffer) ID() string {
	return b.id
}

// Samples returns the buffer's current contents
func (b *ManagedBuffer) Samples() []float64 {
	return b.samples
}

// Write replaces the buffer contents with data, truncated to capacity
func (b *ManagedBuffer) Write(data []float64) int {
	n := min(len(data), cap(b.samples))
	b.samples = b.samples[:n]
	copy(b.samples, data)
	b.lastUsed = time.Now()
	return n
}

// Len returns the number of samples currently held
func (b *ManagedBuffer) Len() int {
	return len(b.samples)
}

// Capacity returns the fixed sample capacity
func (b *ManagedBuffer) Capacity() int {
	return cap(b.samples)
}

// MemoryBytes returns the buffer's backing memory size in bytes
func (b *ManagedBuffer) MemoryBytes() int {
	return cap(b.samples) * 8
}

// CreatedAt returns when the buffer was allocated
func (b *ManagedBuffer) CreatedAt() time.Time {
	return b.createdAt
}

// IdleTime returns how long the buffer has gone unused
func (b *ManagedBuffer) IdleTime() time.Duration {
	return time.Since(b.lastUsed)
}

func (b *ManagedBuffer) reset() {
	b.samples = b.samples[:0]
	b.lastUsed = time.Now()
}

// Pool hands out managed buffers up to a hard cap so real-time audio taps
// never allocate per frame.
//
// The single mutex is deliberate: buffer turnover is low-frequency
// relative to sample processing, and the lock only guards list mutation,
// never computation.
type Pool struct {
	mu         sync.Mutex
	free       []*ManagedBuffer
	live       int
	maxBuffers int
	bufferCap  int
}

// NewPool creates a pool of buffers holding bufferCap samples each, with
// at most maxBuffers alive at once
func NewPool(bufferCap, maxBuffers int) *Pool {
	if bufferCap <= 0 {
		bufferCap = 2048
	}
	if maxBuffers <= 0 {
		maxBuffers = 8
	}
	return &Pool{
		free:       make([]*ManagedBuffer, 0, maxBuffers),
		maxBuffers: maxBuffers,
		bufferCap:  bufferCap,
	}
}

// Obtain returns a free buffer, allocating a fresh one while under the
// cap. Returns nil when the pool is at capacity with every buffer in use;
// the caller may skip the frame.
func (p *Pool) Obtain() *ManagedBuffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.free); n > 0 {
		b := p.free[n-1]
		p.free = p.free[:n-1]
		b.lastUsed = time.Now()
		return b
	}

	if p.live < p.maxBuffers {
		p.live++
		return newManagedBuffer(p.bufferCap)
	}

	return nil
}

// Release returns a buffer to the pool with its length reset to zero.
// Buffers beyond the free-list capacity are dropped.
func (p *Pool) Release(b *ManagedBuffer) {
	if b == nil {
		return
	}

	b.reset()

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) < p.maxBuffers {
		p.free = append(p.free, b)
	} else {
		p.live--
	}
}

// Live returns the number of buffers currently alive (free or lent out)
func (p *Pool) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// Free returns the number of idle buffers ready for reuse
func (p *Pool) Free() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Capacity returns the pool's hard cap on live buffers
func (p *Pool) Capacity() int {
	return p.maxBuffers
}
