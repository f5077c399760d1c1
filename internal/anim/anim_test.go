package anim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/menuz/internal/menu"
)

func TestControllerReachesCloseStateAfterFrames(t *testing.T) {
	c := NewController(3, StateOpen, "")
	c.FireTrigger(menu.DefaultCloseTrigger)

	assert.True(t, c.IsInTransition())
	assert.Equal(t, StateOpen, c.CurrentStateName())

	assert.True(t, c.Step())
	assert.True(t, c.Step())
	assert.False(t, c.Step())

	assert.False(t, c.IsInTransition())
	assert.Equal(t, menu.DefaultCloseState, c.CurrentStateName())
	assert.Equal(t, 1.0, c.Progress())
}

func TestControllerProgress(t *testing.T) {
	c := NewController(4, "", "")
	c.FireTrigger(menu.DefaultOpenTrigger)
	c.Step()
	assert.InDelta(t, 0.25, c.Progress(), 1e-9)
	assert.Equal(t, StateOpen, c.Target())
}

func TestControllerZeroFramesSwitchesImmediately(t *testing.T) {
	c := NewController(0, "", "Hidden")
	require.Equal(t, "Hidden", c.CurrentStateName())
	c.FireTrigger(menu.DefaultOpenTrigger)
	assert.False(t, c.IsInTransition())
	assert.Equal(t, StateOpen, c.CurrentStateName())
	assert.False(t, c.Step())
}

func TestControllerIgnoresUnknownTrigger(t *testing.T) {
	c := NewController(2, StateOpen, "")
	c.FireTrigger("Wobble")
	assert.False(t, c.IsInTransition())
	c.Map("Wobble", "Shaken")
	c.FireTrigger("Wobble")
	c.Step()
	c.Step()
	assert.Equal(t, "Shaken", c.CurrentStateName())
}

func TestControllerDrivesAnimationClose(t *testing.T) {
	reg := menu.NewRegistry(nil)
	ctrl := NewController(2, "", "")
	m, err := menu.New(reg, menu.Config{
		Name:            "home",
		OpenTransition:  menu.TransitionAnimation,
		CloseTransition: menu.TransitionAnimation,
		Animator:        ctrl,
	})
	require.NoError(t, err)

	m.Open()
	for ctrl.Step() {
	}
	require.Equal(t, StateOpen, ctrl.CurrentStateName())

	m.Close()
	require.True(t, m.IsOpen())
	for i := 0; i < 5 && m.IsOpen(); i++ {
		ctrl.Step()
		reg.Scheduler().Tick()
	}
	assert.False(t, m.IsOpen())
}

func TestFadeCompletes(t *testing.T) {
	var p Progress
	err := Fade(20*time.Millisecond, &p)(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Load())
}

func TestFadeHonorsCancellation(t *testing.T) {
	var p Progress
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Fade(time.Hour, &p)(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, p.Load(), 1.0)
}

func TestDelay(t *testing.T) {
	require.NoError(t, Delay(0)(context.Background()))
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, Delay(time.Hour)(ctx), context.DeadlineExceeded)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"fade", "Delay", "wait", "fail"} {
		r, err := Lookup(name, 0, nil)
		require.NoError(t, err, name)
		require.NotNil(t, r, name)
	}
	_, err := Lookup("spin", 0, nil)
	assert.True(t, errors.Is(err, ErrUnknownRoutine))

	failing, err := Lookup("fail", 0, nil)
	require.NoError(t, err)
	assert.Error(t, failing(context.Background()))
}

func TestProgressClamps(t *testing.T) {
	var p Progress
	p.Store(2)
	assert.Equal(t, 1.0, p.Load())
	p.Store(-1)
	assert.Equal(t, 0.0, p.Load())
	var nilProgress *Progress
	nilProgress.Store(0.5)
	assert.Equal(t, 0.0, nilProgress.Load())
}
