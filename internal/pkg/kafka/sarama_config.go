package kafka

import (
	"Newsroom/internal/api/config"
	log "log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

// newSaramaConfig 每个消费组单独构造，起始位点按 topic 区分
// 用户生命周期事件不能漏，新组从最早位点开始；内容推送只关心新消息
func newSaramaConfig(kafkaCfg config.KafkaConfig, initialOffset string) *sarama.Config {
	c := sarama.NewConfig()

	if kafkaCfg.Version != "" {
		version, err := sarama.ParseKafkaVersion(kafkaCfg.Version)
		if err != nil {
			log.Warn("invalid kafka version, using default", "version", kafkaCfg.Version, "err", err)
		} else {
			c.Version = version
		}
	}

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	c.Consumer.Return.Errors = true
	c.Consumer.Offsets.Initial = parseInitialOffset(initialOffset)
	c.Consumer.Offsets.AutoCommit.Enable = false

	consumer := kafkaCfg.Consumer
	c.Consumer.Group.Session.Timeout = seconds(consumer.SessionTimeout, 30)
	c.Consumer.Group.Heartbeat.Interval = seconds(consumer.HeartbeatInterval, 3)
	c.Consumer.Group.Rebalance.Timeout = seconds(consumer.RebalanceTimeout, 60)
	c.Consumer.MaxProcessingTime = seconds(consumer.MaxProcessingTime, 10)

	return c
}

func parseInitialOffset(s string) int64 {
	if strings.EqualFold(strings.TrimSpace(s), "oldest") {
		return sarama.OffsetOldest
	}
	return sarama.OffsetNewest
}

func seconds(v, fallback int) time.Duration {
	if v <= 0 {
		v = fallback
	}
	return time.Duration(v) * time.Second
}
