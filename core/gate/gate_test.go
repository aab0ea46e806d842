package gate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingyamilmolinar/shimon/core/model"
)

func TestGateSatisfiedByDeadline(t *testing.T) {
	g := New(nil)
	now := time.Unix(100, 0)
	g.Arm(model.TrackMyTurn, time.Second, now)

	assert.Equal(t, Pending, g.Check(now))
	assert.False(t, g.IsSatisfied(now.Add(999*time.Millisecond)))
	assert.Equal(t, TimedOut, g.Check(now.Add(time.Second)))
}

func TestGateSatisfiedEarlyByMatchingNotification(t *testing.T) {
	g := New(nil)
	now := time.Unix(100, 0)
	g.Arm(model.TrackCorrect, time.Second, now)
	g.Notify(model.TrackCorrect)

	require.True(t, g.IsSatisfied(now.Add(10*time.Millisecond)))
	assert.Equal(t, Notified, g.Check(now.Add(10*time.Millisecond)))
}

func TestGateDropsStaleNotification(t *testing.T) {
	g := New(nil)
	now := time.Unix(100, 0)
	g.Arm(model.TrackMyTurn, time.Second, now)
	// the previous cue reports late, after the new one was armed
	g.Notify(model.TrackInstructions)

	assert.False(t, g.IsSatisfied(now.Add(500*time.Millisecond)))
	assert.True(t, g.IsSatisfied(now.Add(time.Second)))
}

func TestGateRearmClearsNotification(t *testing.T) {
	g := New(nil)
	now := time.Unix(100, 0)
	g.Arm(model.TrackWrong, time.Second, now)
	g.Notify(model.TrackWrong)
	require.True(t, g.IsSatisfied(now))

	g.Arm(model.TrackGameOver, 2*time.Second, now)
	assert.False(t, g.IsSatisfied(now))
}

func TestGateUntrackedAcceptsAnyNotification(t *testing.T) {
	g := New(nil)
	now := time.Unix(100, 0)
	g.ArmUntracked(time.Second, now)
	g.Notify(model.ColorTrack(model.Blue))
	assert.Equal(t, Notified, g.Check(now))
}

func TestGateTimerIgnoresNotifications(t *testing.T) {
	g := New(nil)
	now := time.Unix(100, 0)
	g.ArmTimer(250*time.Millisecond, now)
	g.Notify(model.TrackGameOver)
	assert.Equal(t, Pending, g.Check(now.Add(100*time.Millisecond)))
	assert.Equal(t, TimedOut, g.Check(now.Add(250*time.Millisecond)))
}

func TestGateNotifyFromAnotherGoroutine(t *testing.T) {
	g := New(nil)
	now := time.Unix(100, 0)
	g.Arm(model.TrackYourTurn, time.Hour, now)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Notify(model.TrackMyTurn)
			g.Notify(model.TrackYourTurn)
		}()
	}
	wg.Wait()
	assert.Equal(t, Notified, g.Check(now))
}

func TestGateNeverEarlierThanMinimum(t *testing.T) {
	g := New(nil)
	start := time.Unix(100, 0)
	g.Arm(model.TrackGameOver, 2*time.Second, start)
	for ms := 0; ms < 2000; ms += 10 {
		if g.IsSatisfied(start.Add(time.Duration(ms) * time.Millisecond)) {
			t.Fatalf("satisfied at %dms without notification", ms)
		}
	}
	assert.Equal(t, start.Add(2*time.Second), g.Deadline())
}
