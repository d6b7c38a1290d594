package es

import (
	"Newsroom/internal/api/config"
	"Newsroom/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/indices/create"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

var Client *elasticsearch.TypedClient

var NewsIndex string

const (
	NotFoundCode = 404
	ConflictCode = 409
)

// InitClient 连接 Elasticsearch 并确保新闻索引存在
func InitClient() error {
	elasticCfg := config.Cfg.Elastic
	NewsIndex = elasticCfg.Indices.NewsIndex

	var err error
	Client, err = elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses: []string{elasticCfg.Address},
		Username:  elasticCfg.Username,
		Password:  elasticCfg.Password,
		Transport: &logger.ESTransport{Transport: http.DefaultTransport},
	})
	if err != nil {
		log.Error("failed to create elasticsearch client", "err", err)
		return err
	}

	ctx := context.Background()
	info, err := Client.Info().Do(ctx)
	if err != nil {
		log.Error("elasticsearch unreachable", "address", elasticCfg.Address, "err", err)
		return err
	}
	log.Info("Connected to Elasticsearch", "version", info.Version.Int, "index", NewsIndex)

	return ensureNewsIndex(ctx)
}

// newsMapping status/category/tags 用于 term 过滤，必须是 keyword
func newsMapping() *types.TypeMapping {
	dateDetection := false
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"id":               types.NewLongNumberProperty(),
			"title":            types.NewTextProperty(),
			"summary":          types.NewTextProperty(),
			"content":          types.NewTextProperty(),
			"channel_username": types.NewTextProperty(),
			"category":         types.NewKeywordProperty(),
			"tags":             types.NewKeywordProperty(),
			"status":           types.NewKeywordProperty(),
			"created_at":       types.NewDateProperty(),
			"updated_at":       types.NewDateProperty(),
		},
		DateDetection: &dateDetection,
	}
}

func ensureNewsIndex(ctx context.Context) error {
	exists, err := Client.Indices.Exists(NewsIndex).Do(ctx)
	if err != nil {
		return fmt.Errorf("check index %s: %w", NewsIndex, err)
	}
	if exists {
		return nil
	}

	_, err = Client.Indices.Create(NewsIndex).Request(&create.Request{
		Mappings: newsMapping(),
	}).Do(ctx)
	if err != nil {
		return fmt.Errorf("create index %s: %w", NewsIndex, err)
	}
	log.Info("news index created", "index", NewsIndex)
	return nil
}
