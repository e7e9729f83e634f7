package token_bucket

import (
	"sync"
	"time"

	"dispatch/pkg/clock"
)

const defaultIdleTTL = 10 * time.Minute

// Buckets - по ведру на ключ (адрес клиента). Ведра без обращений дольше
// idleTTL выбрасываются при очередной проверке.
type Buckets struct {
	capacity   int
	refillRate float64
	idleTTL    time.Duration
	clock      clock.Clock

	mu        sync.Mutex
	buckets   map[string]*keyedBucket
	lastSweep time.Time
}

type keyedBucket struct {
	bucket   *TokenBucket
	lastSeen time.Time
}

func NewBuckets(capacity int, refillRate float64) *Buckets {
	return NewBucketsWithClock(capacity, refillRate, defaultIdleTTL, clock.New())
}

func NewBucketsWithClock(capacity int, refillRate float64, idleTTL time.Duration, clk clock.Clock) *Buckets {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}

	return &Buckets{
		capacity:   capacity,
		refillRate: refillRate,
		idleTTL:    idleTTL,
		clock:      clk,
		buckets:    make(map[string]*keyedBucket),
		lastSweep:  clk.Now(),
	}
}

func (b *Buckets) Allow(key string) bool {
	now := b.clock.Now()

	b.mu.Lock()
	if now.Sub(b.lastSweep) >= b.idleTTL {
		b.sweep(now)
	}

	entry, ok := b.buckets[key]
	if !ok {
		entry = &keyedBucket{
			bucket: NewTokenBucketWithClock(b.capacity, b.refillRate, b.clock),
		}
		b.buckets[key] = entry
	}
	entry.lastSeen = now
	b.mu.Unlock()

	return entry.bucket.Allow()
}

// Len - число живых ведер.
func (b *Buckets) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buckets)
}

func (b *Buckets) sweep(now time.Time) {
	for key, entry := range b.buckets {
		if now.Sub(entry.lastSeen) >= b.idleTTL {
			delete(b.buckets, key)
		}
	}
	b.lastSweep = now
}
