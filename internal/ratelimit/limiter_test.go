package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/cache"
)

func TestCheckSequentialMonotonicity(t *testing.T) {
	ctx := context.Background()
	limiter := New(cache.NewMemory())

	// max=2: exatamente as duas primeiras passam
	assert.True(t, limiter.Check(ctx, "x", 2, time.Hour))
	assert.True(t, limiter.Check(ctx, "x", 2, time.Hour))
	assert.False(t, limiter.Check(ctx, "x", 2, time.Hour))
	assert.False(t, limiter.Check(ctx, "x", 2, time.Hour))

	// identificador diferente tem cota própria
	assert.True(t, limiter.Check(ctx, "y", 2, time.Hour))
}

func TestCheckConcurrentSameIdentifier(t *testing.T) {
	ctx := context.Background()
	limiter := New(cache.NewMemory())

	const goroutines = 100
	const max = 10

	var wg sync.WaitGroup
	results := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- limiter.Check(ctx, "mesmo-destino", max, time.Hour)
		}()
	}
	wg.Wait()
	close(results)

	passed := 0
	for ok := range results {
		if ok {
			passed++
		}
	}

	// independente da intercalação, exatamente max passam
	assert.Equal(t, max, passed)
}

func TestCheckWindowExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	clock := func() time.Time { return now }
	mem := cache.NewMemory(cache.WithClock(func() time.Time { return clock() }))
	limiter := New(mem)

	assert.True(t, limiter.Check(ctx, "x", 1, time.Minute))
	assert.False(t, limiter.Check(ctx, "x", 1, time.Minute))

	clock = func() time.Time { return now.Add(2 * time.Minute) }
	assert.True(t, limiter.Check(ctx, "x", 1, time.Minute))
}

func TestCheckDisabledLimits(t *testing.T) {
	ctx := context.Background()
	limiter := New(cache.NewMemory())

	assert.True(t, limiter.Check(ctx, "x", 0, time.Hour))
	assert.True(t, limiter.Check(ctx, "x", 5, 0))
}

func TestRemaining(t *testing.T) {
	ctx := context.Background()
	limiter := New(cache.NewMemory())

	assert.Equal(t, 3, limiter.Remaining(ctx, "x", 3))
	limiter.Check(ctx, "x", 3, time.Hour)
	assert.Equal(t, 2, limiter.Remaining(ctx, "x", 3))
	limiter.Check(ctx, "x", 3, time.Hour)
	limiter.Check(ctx, "x", 3, time.Hour)
	assert.Equal(t, 0, limiter.Remaining(ctx, "x", 3))
}
