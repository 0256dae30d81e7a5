package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()

	ran := 0
	s.AddJob("counter", 0, func(ctx context.Context) error {
		ran++
		return nil
	})
	s.AddJob("failing", 0, func(ctx context.Context) error {
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Equal(t, 2, ran)
}

func TestScheduler_ContainsPanickingJob(t *testing.T) {
	s := NewScheduler()

	ran := false
	s.AddJob("panicking", 0, func(ctx context.Context) error {
		panic("boom")
	})
	s.AddJob("healthy", 0, func(ctx context.Context) error {
		ran = true
		return nil
	})

	assert.NotPanics(t, func() {
		s.RunOnce(context.Background())
	})
	assert.True(t, ran, "a panicking job must not stop the remaining jobs")
}
