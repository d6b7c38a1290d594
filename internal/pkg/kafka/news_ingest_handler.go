package kafka

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// NewsIngestHandler 消费外部频道推送的内容
type NewsIngestHandler struct {
	newsSvc service.NewsService
}

func NewNewsIngestHandler(newsSvc service.NewsService) *NewsIngestHandler {
	return &NewsIngestHandler{
		newsSvc: newsSvc,
	}
}

func (s *NewsIngestHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("news ingest consumer setup")
	return nil
}

func (s *NewsIngestHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("news ingest consumer cleanup")
	return nil
}

func (s *NewsIngestHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-news-ingest consume claim", "partition", claim.Partition())
	if err := pullMessageBatch(session, claim, s.Handle); err != nil {
		log.Error("topic-news-ingest process batch error", "err", err)
		return err
	}
	return nil
}

func (s *NewsIngestHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var req dto.IngestNewsDTO
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		log.WarnContext(ctx, "skip malformed news message", "offset", msg.Offset, "err", err)
		return nil
	}

	news, err := s.newsSvc.IngestNews(ctx, &req)
	if err != nil {
		if service.IsInvalidInput(err) {
			log.WarnContext(ctx, "skip invalid news message", "telegram_id", req.TelegramID, "err", err)
			return nil
		}
		return err
	}
	log.InfoContext(ctx, "news ingested", "telegram_id", req.TelegramID, "news_id", news.ID)
	return nil
}
