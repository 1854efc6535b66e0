package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
)

func fastPolicy(maxRetries uint64) RetryPolicy {
	return RetryPolicy{
		MaxRetries:     maxRetries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
	}
}

func TestRetryPolicyRun_RecoversFromTransientFailures(t *testing.T) {
	attempts := 0
	err := fastPolicy(5).Run(context.Background(), "op", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, attempts)
}

func TestRetryPolicyRun_GivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	wantErr := errors.New("still down")
	err := fastPolicy(2).Run(context.Background(), "op", func() error {
		attempts++
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	require.Equal(t, 3, attempts)
}

func TestRetryPolicyRun_PermanentErrorStopsImmediately(t *testing.T) {
	attempts := 0
	wantErr := errors.New("bad request")
	err := fastPolicy(5).Run(context.Background(), "op", func() error {
		attempts++
		return backoff.Permanent(wantErr)
	})
	require.ErrorIs(t, err, wantErr)
	require.Equal(t, 1, attempts)
}

func TestRetryPolicyRun_ContextCancelStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := fastPolicy(100).Run(ctx, "op", func() error {
		attempts++
		cancel()
		return errors.New("transient")
	})
	require.Error(t, err)
	require.LessOrEqual(t, attempts, 2)
}
