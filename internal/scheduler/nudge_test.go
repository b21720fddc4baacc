package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	err   error
	rolls []int
}

func (f *fakeNotifier) PublishConfigUpdated(ctx context.Context, deviceLocation string) error {
	return f.err
}

func (f *fakeNotifier) PublishInspirationNudge(ctx context.Context, roll int) error {
	if f.err != nil {
		return f.err
	}
	f.rolls = append(f.rolls, roll)
	return nil
}

func TestNudgeScheduler_Trigger_Fires(t *testing.T) {
	bus := &fakeNotifier{}
	s := NewNudgeScheduler(bus, "*/10 * * * *")
	s.roll = func() int { return firingRoll }

	fired, roll, err := s.Trigger(context.Background())
	require.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, firingRoll, roll)
	assert.Equal(t, []int{firingRoll}, bus.rolls)
}

func TestNudgeScheduler_Trigger_NonFiringRolls(t *testing.T) {
	bus := &fakeNotifier{}
	s := NewNudgeScheduler(bus, "*/10 * * * *")

	for _, r := range []int{1, 3} {
		s.roll = func() int { return r }

		fired, roll, err := s.Trigger(context.Background())
		require.NoError(t, err)
		assert.False(t, fired)
		assert.Equal(t, r, roll)
	}
	assert.Empty(t, bus.rolls)
}

func TestNudgeScheduler_Trigger_PublishError(t *testing.T) {
	bus := &fakeNotifier{err: errors.New("broker unreachable")}
	s := NewNudgeScheduler(bus, "*/10 * * * *")
	s.roll = func() int { return firingRoll }

	fired, roll, err := s.Trigger(context.Background())
	assert.Error(t, err)
	assert.False(t, fired)
	assert.Equal(t, firingRoll, roll)
}

func TestNudgeScheduler_StartStop(t *testing.T) {
	s := NewNudgeScheduler(&fakeNotifier{}, "*/10 * * * *")

	require.NoError(t, s.Start())
	// Start is idempotent
	require.NoError(t, s.Start())
	s.Stop()
	s.Stop()
}

func TestNudgeScheduler_Start_BadSchedule(t *testing.T) {
	s := NewNudgeScheduler(&fakeNotifier{}, "not a schedule")
	assert.Error(t, s.Start())
}
