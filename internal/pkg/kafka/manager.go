package kafka

import (
	"Newsroom/internal/api/config"
	"context"
	log "log/slog"
	"sync"

	"github.com/IBM/sarama"
)

type consumer struct {
	name    string
	topic   string
	group   sarama.ConsumerGroup
	handler sarama.ConsumerGroupHandler
}

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	consumers []*consumer
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	userLifecycleHandler *UserLifecycleHandler,
	newsIngestHandler *NewsIngestHandler,
) (*ConsumerManager, error) {
	usersCfg := newSaramaConfig(cfg.Kafka, cfg.KafkaUserConsumer.InitialOffset)
	usersGroup, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaUserConsumer.GroupID, usersCfg)
	if err != nil {
		return nil, err
	}

	newsCfg := newSaramaConfig(cfg.Kafka, cfg.KafkaNewsConsumer.InitialOffset)
	newsGroup, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaNewsConsumer.GroupID, newsCfg)
	if err != nil {
		_ = usersGroup.Close()
		return nil, err
	}

	return &ConsumerManager{
		consumers: []*consumer{
			{name: "user-lifecycle", topic: cfg.KafkaUserConsumer.Topic, group: usersGroup, handler: userLifecycleHandler},
			{name: "news-ingest", topic: cfg.KafkaNewsConsumer.Topic, group: newsGroup, handler: newsIngestHandler},
		},
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, c := range m.consumers {
		wg.Add(1)
		go func(c *consumer) {
			defer wg.Done()
			log.Info("Kafka consumer started", "name", c.name, "topic", c.topic)
			for {
				if err := c.group.Consume(ctx, []string{c.topic}, c.handler); err != nil {
					log.Error("Error from consumer", "name", c.name, "err", err)
				}
				if ctx.Err() != nil {
					return
				}
			}
		}(c)

		go func(c *consumer) {
			for err := range c.group.Errors() {
				log.Error("Kafka consumer group error", "name", c.name, "err", err)
			}
		}(c)
	}

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")
	wg.Wait()

	for _, c := range m.consumers {
		if err := c.group.Close(); err != nil {
			log.Error("Failed to close consumer", "name", c.name, "err", err)
		}
	}
	return nil
}
