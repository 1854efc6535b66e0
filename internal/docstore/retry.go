package docstore

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// RetryPolicy bounds how long a transient store failure is retried.
// Backoff doubles from InitialBackoff up to MaxBackoff; after
// MaxRetries the last error propagates to the caller.
type RetryPolicy struct {
	MaxRetries     uint64
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryPolicy covers every regular store operation.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries:     5,
	InitialBackoff: time.Second,
	MaxBackoff:     30 * time.Second,
}

// ProbeRetryPolicy covers the startup connectivity probe, which waits
// out slower cluster boots.
var ProbeRetryPolicy = RetryPolicy{
	MaxRetries:     10,
	InitialBackoff: 2 * time.Second,
	MaxBackoff:     60 * time.Second,
}

// Run executes op under the policy. Ops mark non-transient failures
// with backoff.Permanent to fail immediately.
func (p RetryPolicy) Run(ctx context.Context, name string, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialBackoff
	bo.MaxInterval = p.MaxBackoff
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0
	bo.Reset()

	notify := func(err error, wait time.Duration) {
		logutil.GetLogger(ctx).Warn("store operation failed, retrying",
			zap.String("op", name),
			zap.Duration("backoff", wait),
			zap.Error(err))
	}
	return backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(bo, p.MaxRetries), ctx), notify)
}
