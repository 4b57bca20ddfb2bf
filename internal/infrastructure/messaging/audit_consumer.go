package messaging

import (
	"context"
	"encoding/json"
	"sync"

	"bank-core/internal/infrastructure/messaging/kafka"
	"bank-core/internal/pkg/logging"

	"github.com/IBM/sarama"
)

// AuditConsumer subscribes to every notification topic and logs what it
// receives. It has no write path back into the bank: balances already
// settled before any event reached Kafka, so there is nothing here to
// apply, retry, or deduplicate — only to observe.
type AuditConsumer struct {
	consumerGroup sarama.ConsumerGroup
	topics        []string
	wg            sync.WaitGroup
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewAuditConsumer creates a new audit consumer subscribed to all banking
// notification topics under the given consumer group name.
func NewAuditConsumer(config *kafka.Config, groupName string) (*AuditConsumer, error) {
	saramaConfig, err := config.ToSaramaConfig()
	if err != nil {
		return nil, err
	}

	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, groupName, saramaConfig)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &AuditConsumer{
		consumerGroup: consumerGroup,
		topics:        kafka.GetAllTopics(),
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// Start begins consuming and logging notification events.
func (c *AuditConsumer) Start() error {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		handler := &auditConsumerHandler{}

		for {
			if err := c.consumerGroup.Consume(c.ctx, c.topics, handler); err != nil {
				logging.Error("audit consumer session ended with error", err, nil)
			}
			if c.ctx.Err() != nil {
				return
			}
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case err, ok := <-c.consumerGroup.Errors():
				if !ok {
					return
				}
				logging.Error("audit consumer group error", err, nil)
			case <-c.ctx.Done():
				return
			}
		}
	}()

	logging.Info("audit consumer started", map[string]interface{}{"topics": c.topics})
	return nil
}

// Stop gracefully stops the consumer.
func (c *AuditConsumer) Stop() error {
	c.cancel()
	c.wg.Wait()

	if err := c.consumerGroup.Close(); err != nil {
		return err
	}

	logging.Info("audit consumer stopped", nil)
	return nil
}

type auditConsumerHandler struct{}

func (h *auditConsumerHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *auditConsumerHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *auditConsumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			var payload map[string]interface{}
			if err := json.Unmarshal(message.Value, &payload); err != nil {
				logging.Warn("audit consumer received malformed event", map[string]interface{}{
					"topic":  message.Topic,
					"offset": message.Offset,
				})
				session.MarkMessage(message, "")
				continue
			}

			logging.Info("audit event received", map[string]interface{}{
				"topic":     message.Topic,
				"partition": message.Partition,
				"offset":    message.Offset,
				"key":       string(message.Key),
				"event":     payload,
			})

			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
