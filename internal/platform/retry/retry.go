// Package retry wraps sethvargo/go-retry with the outbound-call policy shared by
// upstream clients: retry only transient failures, and not at all by default
package retry

import (
	"context"
	"time"

	goretry "github.com/sethvargo/go-retry"

	"nutriscope/internal/platform/config"
	perr "nutriscope/internal/platform/errors"
	"nutriscope/internal/platform/logger"
)

// Policy bounds retries for one upstream
type Policy struct {
	// MaxRetries is the number of extra attempts; 0 means a single definitive call
	MaxRetries uint64
	// Base is the first backoff interval, doubled per attempt
	Base time.Duration
	// Cap bounds any single wait
	Cap time.Duration
	// JitterPercent randomizes each wait by +/- this percentage
	JitterPercent uint64
}

// Default backoff shape used when a client enables retries
const (
	DefaultBase   = 250 * time.Millisecond
	DefaultCap    = 5 * time.Second
	DefaultJitter = 20
)

// FromConfig reads MAX_RETRIES and RETRY_BASE from a prefixed config, e.g. NUTRITIONIX_
func FromConfig(cfg config.Conf) Policy {
	n := cfg.MayInt("MAX_RETRIES", 0)
	if n < 0 {
		n = 0
	}
	return Policy{
		MaxRetries:    uint64(n),
		Base:          cfg.MayDuration("RETRY_BASE", DefaultBase),
		Cap:           DefaultCap,
		JitterPercent: DefaultJitter,
	}
}

func (p Policy) backoff() goretry.Backoff {
	base := p.Base
	if base <= 0 {
		base = DefaultBase
	}
	b := goretry.NewExponential(base)
	if p.JitterPercent > 0 {
		b = goretry.WithJitterPercent(p.JitterPercent, b)
	}
	if p.Cap > 0 {
		b = goretry.WithCappedDuration(p.Cap, b)
	}
	return goretry.WithMaxRetries(p.MaxRetries, b)
}

// Do runs fn, retrying errors perr.Retryable accepts while the policy allows.
// op names the call in logs. The last error is returned as fn produced it
func Do(ctx context.Context, p Policy, op string, fn func(context.Context) error) error {
	if p.MaxRetries == 0 {
		return fn(ctx)
	}
	attempt := 0
	var last error
	err := goretry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempt++
		last = fn(ctx)
		if last != nil && perr.Retryable(last) && uint64(attempt) <= p.MaxRetries {
			logger.C(ctx).Debug().Str("op", op).Int("attempt", attempt).Err(last).Msg("retrying upstream call")
			return goretry.RetryableError(last)
		}
		return last
	})
	if err != nil && last != nil {
		return last
	}
	return err
}
