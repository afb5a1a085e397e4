package common

import (
	"time"

	"github.com/ulule/limiter"
)

var (
	RateLimitAPI = limiter.Rate{
		Period: 1 * time.Second,
		Limit:  100,
	}
)

type RateLimitRule struct {
	Default     limiter.Rate
	ByIPAddress map[string]limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{
		Default:     rate,
		ByIPAddress: map[string]limiter.Rate{},
	}
}
