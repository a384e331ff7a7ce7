package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/logger"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumerService drains the audit topic and writes each event to the
// structured log. It is the single reader of the in-process audit bus.
type auditConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewAuditConsumerService(pubSub *gochannel.GoChannel, topicName string, logger logger.ILogger) IConsumerService {
	return &auditConsumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    logger,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *auditConsumerService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var audit dto.AuditMessage
	if err := json.Unmarshal(msg.Payload, &audit); err != nil {
		cs.logger.Warn("audit", "dropping malformed audit message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	details := map[string]interface{}{
		"event_type":  audit.Type,
		"occurred_at": audit.OccurredAt,
	}
	for k, v := range audit.Data {
		details[k] = v
	}

	cs.logger.Info("audit", audit.Type, details)
}
