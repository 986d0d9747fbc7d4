package batch

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestQueuePushPopOrder(t *testing.T) {
	q := NewQueue()
	a := ProcessorInput{TaskID: uuid.New()}
	b := ProcessorInput{TaskID: uuid.New()}
	q.Push(a)
	q.Push(b)

	got1, ok := q.Pop()
	if !ok || got1.TaskID != a.TaskID {
		t.Fatalf("expected first pop to be a, got %+v ok=%v", got1, ok)
	}
	got2, ok := q.Pop()
	if !ok || got2.TaskID != b.TaskID {
		t.Fatalf("expected second pop to be b, got %+v ok=%v", got2, ok)
	}
}

func TestQueuePopBlocksThenClose(t *testing.T) {
	q := NewQueue()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		if ok {
			t.Errorf("expected Pop to report !ok after Close on empty queue")
		}
	case <-time.After(time.Second):
		t.Fatalf("Pop did not unblock after Close")
	}
}
