package events

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/sttnf/project-DDP/pkg/config"
	"github.com/sttnf/project-DDP/pkg/logger"
)

func nopLogger() logger.Logger {
	return logger.NewWithWriter(&config.Config{LogLevel: "error"}, io.Discard)
}

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := NewEventBus(nopLogger())
	defer bus.Close() //nolint:errcheck
	ctx := context.Background()

	received := make(chan string, 1)
	_, err := bus.Subscribe(ctx, "test.topic", func(_ context.Context, msg *message.Message) error {
		received <- string(msg.Payload)
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.Publish(ctx, "test.topic", message.NewMessage("1", []byte("hello"))); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case payload := <-received:
		if payload != "hello" {
			t.Fatalf("expected hello, got %q", payload)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestEventBus_TopicsAreIsolated(t *testing.T) {
	bus := NewEventBus(nopLogger())
	defer bus.Close() //nolint:errcheck
	ctx := context.Background()

	received := make(chan string, 2)
	if _, err := bus.Subscribe(ctx, "a", func(_ context.Context, msg *message.Message) error {
		received <- string(msg.Payload)
		return nil
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.Publish(ctx, "b", message.NewMessage("1", []byte("wrong topic"))); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := bus.Publish(ctx, "a", message.NewMessage("2", []byte("right topic"))); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case payload := <-received:
		if payload != "right topic" {
			t.Fatalf("received message from wrong topic: %q", payload)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

// TestRetryWithBackoff_SuccessOnFirstAttempt verifies no retry occurs on success.
func TestRetryWithBackoff_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

// TestRetryWithBackoff_SuccessAfterRetries verifies retry continues until success.
func TestRetryWithBackoff_SuccessAfterRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

// TestRetryWithBackoff_AllRetriesExhausted verifies the last error is returned.
func TestRetryWithBackoff_AllRetriesExhausted(t *testing.T) {
	calls := 0
	wantErr := errors.New("permanent")
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return wantErr
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped %v, got %v", wantErr, err)
	}
	if calls != maxRetries {
		t.Errorf("expected %d calls, got %d", maxRetries, calls)
	}
}
