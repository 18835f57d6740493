package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func fastPolicy(max int) Policy {
	return Policy{
		MaxRetries:   max,
		InitialDelay: 5 * time.Millisecond,
		MaxDelay:     20 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestRetryer_SuccessFirstTry(t *testing.T) {
	r := New(fastPolicy(3), zap.NewNop())

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls, "应该只调用一次")
}

func TestRetryer_RetryThenSuccess(t *testing.T) {
	r := New(fastPolicy(3), zap.NewNop())

	calls := 0
	got, err := Do(context.Background(), r, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary")
		}
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestRetryer_Exhausted(t *testing.T) {
	r := New(fastPolicy(2), zap.NewNop())
	root := errors.New("persistent")

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return root
	})

	assert.ErrorIs(t, err, root)
	assert.Contains(t, err.Error(), "重试 2 次后仍失败")
	assert.Equal(t, 3, calls, "初始 + 2 次重试")
}

func TestRetryer_NoRetriesReturnsRawError(t *testing.T) {
	r := New(fastPolicy(0), nil)
	root := errors.New("once")

	err := r.Do(context.Background(), func(context.Context) error { return root })
	assert.Equal(t, root, err)
}

func TestRetryer_ShouldRetryFilter(t *testing.T) {
	fatal := errors.New("fatal")
	p := fastPolicy(5)
	p.ShouldRetry = func(err error) bool { return !errors.Is(err, fatal) }
	r := New(p, zap.NewNop())

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls, "不应该重试")
}

func TestRetryer_ContextCanceled(t *testing.T) {
	p := Policy{MaxRetries: 5, InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}
	r := New(p, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := r.Do(ctx, func(context.Context) error { return errors.New("x") })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "重试被取消")
}

func TestRetryer_Delay(t *testing.T) {
	r := New(Policy{MaxRetries: 5, InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}, nil)

	assert.Equal(t, 100*time.Millisecond, r.delay(1))
	assert.Equal(t, 200*time.Millisecond, r.delay(2))
	assert.Equal(t, 800*time.Millisecond, r.delay(4))
	assert.Equal(t, time.Second, r.delay(5))
}
