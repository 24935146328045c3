package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy bounds retries of transient failures.
type RetryPolicy struct {
	Attempts int
	Base     time.Duration
	Max      time.Duration
}

type retrying struct {
	next   Provider
	policy RetryPolicy
	sleep  func(context.Context, time.Duration) error
}

// WithRetry retries rate limits and outages with jittered exponential
// backoff. A reply that fails its schema is retried once; truncated
// replies and cancelled contexts are not retried.
func WithRetry(p Provider, policy RetryPolicy) Provider {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	return &retrying{next: p, policy: policy, sleep: sleepCtx}
}

func (r *retrying) ModelID() string { return r.next.ModelID() }

func (r *retrying) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	var err error
	invalidSeen := false
	for attempt := 0; attempt < r.policy.Attempts; attempt++ {
		if attempt > 0 {
			if serr := r.sleep(ctx, r.wait(attempt, err)); serr != nil {
				return nil, serr
			}
		}

		var c *Completion
		c, err = r.next.Complete(ctx, p)
		if err == nil {
			return c, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}

		var lerr *Error
		if !errors.As(err, &lerr) {
			continue
		}
		switch lerr.Kind {
		case KindTruncated:
			return nil, err
		case KindInvalidOutput:
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
	}
	return nil, err
}

func (r *retrying) wait(attempt int, last error) time.Duration {
	var lerr *Error
	if errors.As(last, &lerr) && lerr.RetryAfter > 0 {
		return lerr.RetryAfter
	}
	d := r.policy.Base << (attempt - 1)
	if r.policy.Max > 0 && d > r.policy.Max {
		d = r.policy.Max
	}
	// ±20%
	return time.Duration(float64(d) * (0.8 + 0.4*rand.Float64()))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type logging struct {
	next Provider
	log  *zap.Logger
}

// WithLogging logs each request's outcome and token usage. Prompts and
// replies are only logged at debug level since they carry the learner's
// answers.
func WithLogging(p Provider, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &logging{next: p, log: log.Named("llm")}
}

func (l *logging) ModelID() string { return l.next.ModelID() }

func (l *logging) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	start := time.Now()
	c, err := l.next.Complete(ctx, p)
	fields := []zap.Field{
		zap.String("purpose", p.Purpose),
		zap.String("model", l.next.ModelID()),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		l.log.Warn("llm request failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	l.log.Info("llm request", append(fields,
		zap.String("served_by", c.Model),
		zap.Int("input_tokens", c.Usage.InputTokens),
		zap.Int("output_tokens", c.Usage.OutputTokens),
	)...)
	if ce := l.log.Check(zap.DebugLevel, "llm exchange"); ce != nil {
		ce.Write(zap.String("system", p.System), zap.String("user", p.User), zap.ByteString("reply", c.JSON))
	}
	return c, nil
}
