package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func TestRetry(t *testing.T) {
	ctx := context.Background()
	errPermanent := errors.New("permanent")

	tests := []struct {
		name      string
		attempts  int
		failUntil int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"success first try", 3, 0, nil, 1, false},
		{"retry then succeed", 3, 2, &RetryableError{Err: errTransient}, 3, false},
		{"exhausted", 3, 10, &RetryableError{Err: errTransient}, 3, true},
		{"permanent stops", 3, 10, errPermanent, 1, true},
		{"zero attempts runs once", 0, 10, &RetryableError{Err: errTransient}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failUntil {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Second, func() error {
		return &RetryableError{Err: errTransient}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}

func TestRetryableErrorUnwrap(t *testing.T) {
	err := &RetryableError{Err: errTransient}
	if !errors.Is(err, errTransient) {
		t.Error("RetryableError should unwrap to its cause")
	}
	if err.Error() != "transient" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !IsRetryable(err) || IsRetryable(errTransient) {
		t.Error("IsRetryable mismatch")
	}
	if unwrapRetryable(err) != errTransient {
		t.Error("unwrapRetryable should strip the marker")
	}
}
