package pool

import (
	"testing"
	"time"

	"judged/internal/model"
)

func TestFIFOQueuePreservesOrder(t *testing.T) {
	q := newFIFOQueue(0)
	for i := 0; i < 5; i++ {
		task := model.Task{ID: string(rune('a' + i))}
		if ok, _, _ := q.push(Work{Task: task}); !ok {
			t.Fatalf("push %d failed", i)
		}
	}
	for i := 0; i < 5; i++ {
		item, ok, closed := q.pop(time.Second)
		if !ok || closed {
			t.Fatalf("pop %d: ok=%v closed=%v", i, ok, closed)
		}
		want := string(rune('a' + i))
		if item.Task.ID != want {
			t.Fatalf("pop %d = %q, want %q", i, item.Task.ID, want)
		}
	}
}

func TestFIFOQueuePopTimesOutOnEmpty(t *testing.T) {
	q := newFIFOQueue(0)
	_, ok, closed := q.pop(20 * time.Millisecond)
	if ok || closed {
		t.Fatalf("pop on empty queue: ok=%v closed=%v, want false/false", ok, closed)
	}
}

func TestFIFOQueueBoundedRejectsOverflow(t *testing.T) {
	q := newFIFOQueue(1)
	if ok, _, _ := q.push(Work{}); !ok {
		t.Fatal("first push should succeed")
	}
	ok, closed, full := q.push(Work{})
	if ok || closed || !full {
		t.Fatalf("second push: ok=%v closed=%v full=%v, want false/false/true", ok, closed, full)
	}
}

func TestFIFOQueueCloseDrainsThenReportsClosed(t *testing.T) {
	q := newFIFOQueue(0)
	q.push(Work{Task: model.Task{ID: "last"}})
	q.close()

	item, ok, closed := q.pop(time.Second)
	if !ok || closed || item.Task.ID != "last" {
		t.Fatalf("expected to drain queued item before closed signal, got ok=%v closed=%v item=%+v", ok, closed, item)
	}

	_, ok, closed = q.pop(time.Second)
	if ok || !closed {
		t.Fatalf("after drain: ok=%v closed=%v, want false/true", ok, closed)
	}
}

func TestFIFOQueueRejectsPushAfterClose(t *testing.T) {
	q := newFIFOQueue(0)
	q.close()
	ok, closed, _ := q.push(Work{})
	if ok || !closed {
		t.Fatalf("push after close: ok=%v closed=%v, want false/true", ok, closed)
	}
}
