package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	RedisThrottleKeyPrefix = "intake:throttle:"

	throttleTimeout = 2 * time.Second
)

// incrWithExpiryScript bumps the window counter and starts the window on
// the first hit, atomically.
var incrWithExpiryScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return count
`)

// SubmissionThrottle decides whether a client may submit another intake.
type SubmissionThrottle interface {
	Allow(ctx context.Context, clientKey string) bool
}

type redisSubmissionThrottle struct {
	client redis.Scripter
	log    *logrus.Logger
	limit  int64
	window time.Duration
}

// NewRedisSubmissionThrottle allows limit submissions per client per fixed
// window. Redis errors fail open.
func NewRedisSubmissionThrottle(client redis.Scripter, log *logrus.Logger, limit int64, window time.Duration) SubmissionThrottle {
	return &redisSubmissionThrottle{
		client: client,
		log:    log,
		limit:  limit,
		window: window,
	}
}

func (t *redisSubmissionThrottle) Allow(ctx context.Context, clientKey string) bool {
	ctx, cancel := context.WithTimeout(ctx, throttleTimeout)
	defer cancel()

	count, err := incrWithExpiryScript.Run(ctx, t.client,
		[]string{RedisThrottleKeyPrefix + clientKey},
		t.window.Milliseconds(),
	).Int64()
	if err != nil {
		t.log.Warnf("Submission throttle unavailable, allowing request: %v", err)
		return true
	}

	return count <= t.limit
}

type noopSubmissionThrottle struct{}

// NewNoopSubmissionThrottle allows every submission.
func NewNoopSubmissionThrottle() SubmissionThrottle {
	return noopSubmissionThrottle{}
}

func (noopSubmissionThrottle) Allow(ctx context.Context, clientKey string) bool {
	return true
}
