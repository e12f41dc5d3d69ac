package shm

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
)

// OpenRetry opens cfg.Name, retrying with b while the name does not exist
// yet. Any other error stops immediately. cfg.Create is ignored.
func OpenRetry(ctx context.Context, cfg Config, b backoff.BackOff) (*Segment, error) {
	cfg.Create = false
	if err := VerifyConfig(cfg); err != nil {
		return nil, err
	}
	attempt := 0
	return backoff.RetryWithData(func() (*Segment, error) {
		attempt++
		s, err := New(ctx, cfg)
		if err == nil {
			return s, nil
		}
		if errors.Is(err, ErrNotFound) {
			internalLogger.debugf("open segment %s attempt %d: not created yet", cfg.Name, attempt)
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}, backoff.WithContext(b, ctx))
}
