package pipeline

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerAddJobBadSpec(t *testing.T) {
	t.Parallel()

	s := NewScheduler(zerolog.Nop())
	err := s.AddJob("not a cron spec", JobFunc{JobName: "daily", Fn: func() error { return nil }})
	require.Error(t, err)
}

func TestSchedulerRunNow(t *testing.T) {
	t.Parallel()

	s := NewScheduler(zerolog.Nop())

	var ran bool
	job := JobFunc{JobName: "daily", Fn: func() error {
		ran = true
		return nil
	}}
	require.NoError(t, s.RunNow(job))
	assert.True(t, ran)

	boom := JobFunc{JobName: "broken", Fn: func() error { return errors.New("boom") }}
	assert.Error(t, s.RunNow(boom))
}

func TestSchedulerStartStop(t *testing.T) {
	t.Parallel()

	s := NewScheduler(zerolog.Nop())
	require.NoError(t, s.AddJob("@daily", JobFunc{JobName: "daily", Fn: func() error { return nil }}))
	s.Start()
	s.Stop()
}
