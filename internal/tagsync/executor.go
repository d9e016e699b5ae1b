package tagsync

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// Policy controls the Executor's exponential backoff schedule.
// With MaxRetries=3 and InitialDelay=500ms an operation is attempted four
// times with waits of 500ms, 1s, and 2s between attempts.
type Policy struct {
	// MaxRetries is the number of re-attempts after the initial one.
	MaxRetries uint64
	// InitialDelay is the wait before the first retry; it doubles each retry.
	InitialDelay time.Duration
}

// DefaultPolicy returns the standard policy: 3 retries, 500ms initial delay.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: 3, InitialDelay: 500 * time.Millisecond}
}

// Executor runs store operations against the primary, identity-scoped
// connection, retrying with exponential backoff on failure. Operations run
// through RunWithFallback additionally get one immediate attempt on the
// elevated-privilege connection after the first primary failure, before any
// backoff wait.
//
// The Executor does not classify errors: every failure is retried until the
// policy is exhausted, and the last underlying error is surfaced unchanged.
// Distinguishing conflicts from transient faults is the caller's job.
type Executor struct {
	primary  Store
	elevated Store
	policy   Policy
	log      *slog.Logger
}

// NewExecutor constructs an Executor over the two connections.
// Pass the same Store twice when no elevated connection is configured.
func NewExecutor(primary, elevated Store, policy Policy, log *slog.Logger) *Executor {
	if policy.MaxRetries == 0 && policy.InitialDelay == 0 {
		policy = DefaultPolicy()
	}
	return &Executor{primary: primary, elevated: elevated, policy: policy, log: log}
}

// Op is a single idempotent-safe store operation. The Executor may invoke it
// several times, against either connection.
type Op[T any] func(ctx context.Context, s Store) (T, error)

// Run executes op against the primary connection with retry/backoff.
func Run[T any](ctx context.Context, e *Executor, op Op[T]) (T, error) {
	return run(ctx, e, op, false)
}

// RunWithFallback is Run plus privilege escalation: after the first primary
// failure the operation is immediately re-attempted once on the elevated
// connection. If that also fails, the normal backoff/retry cycle continues
// against the primary connection.
func RunWithFallback[T any](ctx context.Context, e *Executor, op Op[T]) (T, error) {
	return run(ctx, e, op, true)
}

func run[T any](ctx context.Context, e *Executor, op Op[T], fallback bool) (T, error) {
	var (
		result        T
		attempt       int
		triedElevated bool
	)

	backoff := retry.WithMaxRetries(e.policy.MaxRetries, retry.NewExponential(e.policy.InitialDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		v, err := op(ctx, e.primary)
		if err == nil {
			result = v
			return nil
		}

		if fallback && !triedElevated {
			triedElevated = true
			v, ferr := op(ctx, e.elevated)
			if ferr == nil {
				e.log.Info("operation succeeded on elevated connection", "attempt", attempt)
				result = v
				return nil
			}
			err = ferr
		}

		// The next delay doubles per retry: InitialDelay << (attempt-1).
		e.log.Warn("operation attempt failed",
			"attempt", attempt,
			"next_delay", e.policy.InitialDelay<<(attempt-1),
			"error", err,
		)
		return retry.RetryableError(err)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
