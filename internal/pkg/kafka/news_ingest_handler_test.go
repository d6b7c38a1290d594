package kafka

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/service"
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
)

type fakeNewsService struct {
	service.NewsService

	ingested []string
	err      error
}

func (f *fakeNewsService) IngestNews(_ context.Context, req *dto.IngestNewsDTO) (*dto.NewsDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	if req.TelegramID == "" {
		return nil, service.ErrParamInvalid
	}
	f.ingested = append(f.ingested, req.TelegramID)
	return &dto.NewsDTO{ID: uint64(len(f.ingested))}, nil
}

func TestNewsIngestHandler(t *testing.T) {
	news := &fakeNewsService{}
	h := NewNewsIngestHandler(news)

	msg := func(v string) *sarama.ConsumerMessage {
		return &sarama.ConsumerMessage{Topic: "news-ingest", Value: []byte(v)}
	}

	assert.NoError(t, h.Handle(t.Context(), msg(`{"telegramId":"tg-1","channelUsername":"wire","content":"x"}`)))
	assert.NoError(t, h.Handle(t.Context(), msg(`not json`)))
	assert.NoError(t, h.Handle(t.Context(), msg(`{"channelUsername":"wire"}`)))
	assert.Equal(t, []string{"tg-1"}, news.ingested)

	news.err = errors.New("db down")
	assert.Error(t, h.Handle(t.Context(), msg(`{"telegramId":"tg-2","channelUsername":"wire"}`)))
}
