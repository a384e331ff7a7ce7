package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studynotes-be/internal/dto"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []recordedEntry
}

type recordedEntry struct {
	level   string
	module  string
	message string
}

func (l *recordingLogger) record(level, module, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, recordedEntry{level: level, module: module, message: message})
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.record("debug", module, message)
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.record("info", module, message)
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.record("warn", module, message)
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.record("error", module, message)
}

func (l *recordingLogger) Sync() error {
	return nil
}

func (l *recordingLogger) find(level, message string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.level == level && e.message == message {
			return true
		}
	}
	return false
}

func TestPublishAuditDeliversToSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(ctx, "AUDIT_EVENTS_TEST")
	require.NoError(t, err)

	publisher := NewPublisherService("AUDIT_EVENTS_TEST", pubSub, &recordingLogger{})
	publisher.PublishAudit(ctx, "NOTE_CREATED", map[string]any{
		"note_id": "a2b96dd4-17a3-4c3c-9b4e-04f7e0f2a711",
		"user_id": "0d612fcd-9c21-43e9-9e3c-5e8f9a8f51c2",
	})

	select {
	case msg := <-messages:
		msg.Ack()

		var audit dto.AuditMessage
		require.NoError(t, json.Unmarshal(msg.Payload, &audit))
		assert.Equal(t, "NOTE_CREATED", audit.Type)
		assert.Equal(t, "a2b96dd4-17a3-4c3c-9b4e-04f7e0f2a711", audit.Data["note_id"])
		assert.False(t, audit.OccurredAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("no audit message received")
	}
}

func TestAuditConsumerLogsEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	log := &recordingLogger{}
	consumer := NewAuditConsumerService(pubSub, "AUDIT_EVENTS_TEST", log)
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("AUDIT_EVENTS_TEST", pubSub, log)
	publisher.PublishAudit(ctx, "GROUP_CREATED", map[string]any{"group_id": "g1"})

	assert.Eventually(t, func() bool {
		return log.find("info", "GROUP_CREATED")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAuditConsumerDropsMalformedPayload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	log := &recordingLogger{}
	consumer := NewAuditConsumerService(pubSub, "AUDIT_EVENTS_TEST", log)
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("AUDIT_EVENTS_TEST", pubSub, log)
	require.NoError(t, publisher.Publish(ctx, []byte("not json")))

	assert.Eventually(t, func() bool {
		return log.find("warn", "dropping malformed audit message")
	}, 2*time.Second, 10*time.Millisecond)
}
