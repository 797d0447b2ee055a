package pool

import (
	"testing"
	"time"

	"judged/internal/model"
)

type stubJudger struct {
	delay time.Duration
}

func (s stubJudger) Judge(task model.Task) model.Verdict {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return model.Verdict{Status: model.StatusAccepted, Score: 100}
}

func TestPoolSubmitAndReceiveVerdict(t *testing.T) {
	p := New(2, 0, stubJudger{})
	defer p.Shutdown()

	reply := make(chan model.Verdict, 1)
	if err := p.Submit(Work{Task: model.Task{ID: "t1"}, ReplyCh: reply}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case v := <-reply:
		if v.Status != model.StatusAccepted {
			t.Fatalf("verdict = %+v, want ACCEPTED", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for verdict")
	}
}

func TestPoolSubmitAfterShutdownFails(t *testing.T) {
	p := New(1, 0, stubJudger{})
	p.Shutdown()

	err := p.Submit(Work{Task: model.Task{ID: "late"}, ReplyCh: make(chan model.Verdict, 1)})
	if err != ErrQueueClosed {
		t.Fatalf("Submit after shutdown = %v, want ErrQueueClosed", err)
	}
}

func TestPoolBoundedQueueRejectsOverflow(t *testing.T) {
	p := New(1, 1, stubJudger{delay: 200 * time.Millisecond})
	defer p.Shutdown()

	reply := make(chan model.Verdict, 1)
	if err := p.Submit(Work{Task: model.Task{ID: "first"}, ReplyCh: reply}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	// Give the single worker time to pick up "first" so the queue itself
	// (not the in-flight worker) is what's being tested for capacity.
	time.Sleep(20 * time.Millisecond)

	reply2 := make(chan model.Verdict, 1)
	if err := p.Submit(Work{Task: model.Task{ID: "second"}, ReplyCh: reply2}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	reply3 := make(chan model.Verdict, 1)
	err := p.Submit(Work{Task: model.Task{ID: "third"}, ReplyCh: reply3})
	if err != ErrQueueFull {
		t.Fatalf("third submit = %v, want ErrQueueFull", err)
	}
}

func TestPoolActiveCountTracksInFlightWork(t *testing.T) {
	p := New(1, 0, stubJudger{delay: 150 * time.Millisecond})
	defer p.Shutdown()

	reply := make(chan model.Verdict, 1)
	p.Submit(Work{Task: model.Task{ID: "slow"}, ReplyCh: reply})
	time.Sleep(30 * time.Millisecond)
	if p.ActiveCount() != 1 {
		t.Fatalf("ActiveCount() = %d while work in flight, want 1", p.ActiveCount())
	}
	<-reply
	time.Sleep(30 * time.Millisecond)
	if p.ActiveCount() != 0 {
		t.Fatalf("ActiveCount() = %d after completion, want 0", p.ActiveCount())
	}
}
