package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestNextBackoff(t *testing.T) {
	d := initialBackoff
	var got []time.Duration
	for range 7 {
		got = append(got, d)
		d = nextBackoff(d, maxBackoff)
	}
	assert.Equal(t, []time.Duration{
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
		3200 * time.Millisecond,
		5 * time.Second,
		5 * time.Second,
	}, got)
}

func TestSleepWithContext(t *testing.T) {
	clock := clockwork.NewFakeClock()

	assert.True(t, sleepWithContext(context.Background(), clock, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleepWithContext(ctx, clock, time.Second))

	done := make(chan bool, 1)
	go func() { done <- sleepWithContext(context.Background(), clock, time.Second) }()

	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	assert.NoError(t, clock.BlockUntilContext(ctx2, 1))
	clock.Advance(time.Second)
	assert.True(t, <-done)
}
