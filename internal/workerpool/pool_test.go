package workerpool

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestShutdownDrainsAllSubmittedTasks(t *testing.T) {
	p := New(4, 8, testLogger())

	var done atomic.Int32
	for i := 0; i < 100; i++ {
		p.Submit(func() {
			done.Add(1)
		})
	}
	p.Shutdown()

	if got := done.Load(); got != 100 {
		t.Errorf("完成任務數期望 100，實際 %d", got)
	}
}

func TestPanicDoesNotKillWorkers(t *testing.T) {
	p := New(1, 1, testLogger())

	var done atomic.Int32
	p.Submit(func() {
		panic("boom")
	})
	for i := 0; i < 10; i++ {
		p.Submit(func() {
			done.Add(1)
		})
	}
	p.Shutdown()

	if got := done.Load(); got != 10 {
		t.Errorf("panic 之後的任務仍應全部執行，期望 10，實際 %d", got)
	}
}
