package server

import (
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var _ core.Logger = (*WebLogger)(nil)

func TestWebLogger_Infof(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan, nil)

	logger.Infof("Rendering %dx%d", 64, 48)

	select {
	case msg := <-messageChan:
		if msg.Message != "Rendering 64x48" {
			t.Errorf("Expected message 'Rendering 64x48', got '%s'", msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render id test-render-123, got '%s'", msg.RenderID)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	default:
		t.Error("Expected a console message")
	}
}

func TestWebLogger_DebugNotForwarded(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-456", messageChan, nil)

	logger.Debugf("Tile %d/%d done", 1, 4)

	select {
	case msg := <-messageChan:
		t.Errorf("Debug message should not reach the console, got %q", msg.Message)
	default:
	}
}

func TestWebLogger_OrderPreserved(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-789", messageChan, nil)

	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Infof("%s", msg)
	}

	for i, want := range messages {
		select {
		case msg := <-messageChan:
			if msg.Message != want {
				t.Errorf("Message %d: expected '%s', got '%s'", i, want, msg.Message)
			}
		default:
			t.Fatalf("Missing message %d", i+1)
		}
	}
}

func TestWebLogger_FullChannelDoesNotBlock(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-full", messageChan, nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			logger.Infof("Message %d", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Infof blocked on a full channel")
	}
	if len(messageChan) != 1 {
		t.Errorf("Expected 1 buffered message, got %d", len(messageChan))
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil, nil)
	logger.Infof("no console attached")
}
