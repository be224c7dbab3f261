package services

import "time"

const (
	KeyPublishedGame       = "commitment:%s"
	KeyRecentVerifications = "verifications:recent"
	KeyRateLimit           = "ratelimit:%s:%s"

	TTLPublishedGame = 90 * 24 * time.Hour // 90 days

	// How many events the live-feed backlog keeps.
	RecentVerificationsMax = 100

	DefaultRateLimitVerify = 60 // Max 60 verifications per minute per client
)
