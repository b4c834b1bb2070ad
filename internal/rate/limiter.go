package rate

import (
	"context"
	"fmt"
	"time"

	"mystore-backend/pkg/cache"
	"mystore-backend/pkg/xerrors"
)

// Limiter throttles OTP issuance per email+purpose: a short cooldown between
// consecutive requests, a capped count per window, and an extended block once
// the cap is exceeded.
type Limiter struct {
	cache       *cache.Cache
	window      time.Duration
	maxInWindow int
	cooldown    time.Duration
}

func NewLimiter(c *cache.Cache, window time.Duration, max int, cooldown time.Duration) *Limiter {
	return &Limiter{cache: c, window: window, maxInWindow: max, cooldown: cooldown}
}

func (l *Limiter) CanRequest(ctx context.Context, email, purpose string) error {
	blockKey := fmt.Sprintf("block:%s:%s", email, purpose)
	lastKey := fmt.Sprintf("last:%s:%s", email, purpose)
	countKey := fmt.Sprintf("count:%s:%s", email, purpose)

	if ttl, _ := l.cache.GetTTL(ctx, "otp_rate", blockKey); ttl > 0 {
		return fmt.Errorf("%w: please try again after %d seconds", xerrors.ErrRateLimited, int(ttl.Seconds()))
	}

	if ttl, _ := l.cache.GetTTL(ctx, "otp_rate", lastKey); ttl > 0 {
		return fmt.Errorf("%w: please wait %d seconds before requesting another OTP", xerrors.ErrRateLimited, int(ttl.Seconds()))
	}

	cnt, err := l.cache.IncrWithExpire(ctx, "otp_rate", countKey, l.window)
	if err != nil {
		return err
	}
	if int(cnt) > l.maxInWindow {
		_ = l.cache.Set(ctx, "otp_rate", blockKey, "1", l.window*3)
		return fmt.Errorf("%w: please try again after %d seconds", xerrors.ErrRateLimited, int((l.window * 3).Seconds()))
	}

	_ = l.cache.Set(ctx, "otp_rate", lastKey, "1", l.cooldown)

	return nil
}
