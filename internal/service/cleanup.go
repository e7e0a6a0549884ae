package service

import (
	"time"

	"go.uber.org/zap"
)

// IdleEvicter drops sessions that have not been touched for a while
type IdleEvicter interface {
	EvictIdle(ttl time.Duration) int
	Len() int
}

// CleanupService evicts abandoned quiz sessions
type CleanupService struct {
	sessions IdleEvicter
	ttl      time.Duration
	logger   *zap.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(sessions IdleEvicter, ttl time.Duration, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
	}
}

// CleanupIdleSessions removes sessions idle longer than the configured TTL
func (s *CleanupService) CleanupIdleSessions() int {
	evicted := s.sessions.EvictIdle(s.ttl)

	s.logger.Info("Idle sessions cleaned up",
		zap.Duration("ttl", s.ttl),
		zap.Int("evicted", evicted),
		zap.Int("remaining", s.sessions.Len()),
	)

	return evicted
}
