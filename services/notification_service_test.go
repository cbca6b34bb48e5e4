package services

import (
	"testing"
	"time"
)

func TestNotificationServiceStop(t *testing.T) {
	// No pool needed: idle workers block on their channels until Stop.
	svc := NewNotificationService(nil)

	done := make(chan struct{})
	go func() {
		svc.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher workers did not drain on Stop")
	}
}
