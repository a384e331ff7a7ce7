package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/logger"
	"studynotes-be/pkg/events"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
	PublishEvent(ctx context.Context, evt events.Event)
	PublishAudit(ctx context.Context, eventType string, data map[string]any)
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
	logger    logger.ILogger
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel, logger logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		logger:    logger,
	}
}

func (p *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topicName, msg)
}

// PublishEvent serializes the event into the audit envelope and emits
// it. Auditing is auxiliary, so failures are logged and never fail the
// caller's request.
func (p *publisherService) PublishEvent(ctx context.Context, evt events.Event) {
	audit := dto.AuditMessage{
		Type:       evt.EventType(),
		Data:       evt.Payload(),
		OccurredAt: evt.Timestamp(),
	}

	payload, err := json.Marshal(audit)
	if err != nil {
		p.logger.Warn("publisher", "failed to marshal audit message", map[string]any{
			"event_type": audit.Type,
			"error":      err.Error(),
		})
		return
	}

	if err := p.Publish(ctx, payload); err != nil {
		p.logger.Warn("publisher", "failed to publish audit message", map[string]any{
			"event_type": audit.Type,
			"error":      err.Error(),
		})
	}
}

func (p *publisherService) PublishAudit(ctx context.Context, eventType string, data map[string]any) {
	p.PublishEvent(ctx, events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	})
}
