package timeout

import (
	"testing"
	"time"
)

func TestWatchdog_FiresAfterBudget(t *testing.T) {
	w := New()
	w.Start(10 * time.Millisecond)

	if w.HasTimedOut() {
		t.Fatal("HasTimedOut() true immediately after Start")
	}
	time.Sleep(50 * time.Millisecond)
	if !w.HasTimedOut() {
		t.Fatal("HasTimedOut() false after budget elapsed")
	}
	if err := w.CheckTimeout(); err != ErrTimedOut {
		t.Errorf("CheckTimeout() = %v, want ErrTimedOut", err)
	}
}

func TestWatchdog_StopPreventsFire(t *testing.T) {
	w := New()
	w.Start(10 * time.Millisecond)
	w.Stop()
	time.Sleep(30 * time.Millisecond)
	if w.HasTimedOut() {
		t.Error("HasTimedOut() true after Stop")
	}
}
