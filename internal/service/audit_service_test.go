package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/events"
)

func TestAuditServiceRecordsEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	dispatcher := events.NewInMemoryDispatcher()
	audit := NewAuditService(client, dispatcher, zap.NewNop())
	audit.RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.NewLoginFailed("alice", "INVALID_CREDENTIALS")))
	require.NoError(t, dispatcher.Publish(ctx, events.NewTokenRejected("EXPIRED_TOKEN", "new", "/api/session")))

	entries, err := client.LRange(ctx, auditListKey, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// LPUSH order: newest first.
	assert.Contains(t, entries[0], "token_rejected")
	assert.Contains(t, entries[0], "EXPIRED_TOKEN")
	assert.Contains(t, entries[1], "login_failed")
	assert.NotContains(t, entries[1], "battery")
}

func TestAuditServiceSkipsWithoutClient(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	audit := NewAuditService(nil, dispatcher, zap.NewNop())
	audit.RegisterHandlers()

	assert.NoError(t, dispatcher.Publish(context.Background(), events.NewLoginSucceeded("alice", "player")))
}
