package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/events"
)

const (
	auditListKey = "auth_audit"
	auditMaxLen  = 10000
)

// AuditService records auth events to a capped Redis list so operators can
// inspect the migration rollout. Recording is best-effort; a Redis outage
// never fails the request that produced the event.
type AuditService struct {
	client     *redis.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService builds the service.
func NewAuditService(client *redis.Client, dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{client: client, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes the recorder to all auth event types.
func (s *AuditService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventTokenRejected,
	} {
		s.dispatcher.Subscribe(eventType, s.record)
	}
}

// Recent returns the newest audit events, newest first.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]events.Event, error) {
	if s.client == nil {
		return nil, nil
	}
	if limit <= 0 || limit > auditMaxLen {
		limit = 100
	}

	entries, err := s.client.LRange(ctx, auditListKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	recent := make([]events.Event, 0, len(entries))
	for _, entry := range entries {
		var event events.Event
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			s.logger.Warn("audit event unmarshal failed", zap.Error(err))
			continue
		}
		recent = append(recent, event)
	}
	return recent, nil
}

func (s *AuditService) record(ctx context.Context, event events.Event) error {
	if s.client == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("audit event marshal failed", zap.Error(err))
		return err
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, auditListKey, payload)
	pipe.LTrim(ctx, auditListKey, 0, auditMaxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("audit event write failed", zap.Error(err))
		return err
	}
	return nil
}
