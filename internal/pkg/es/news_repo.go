package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

// MaxSearchDepth 深分页截断
const MaxSearchDepth = 1000

type NewsRepo interface {
	IndexNews(ctx context.Context, news *NewsES) error
	DeleteNews(ctx context.Context, id uint64) error
	SearchNews(ctx context.Context, keyword string, from, size int) ([]uint64, int64, error)
}

type NewsRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewNewsRepo(client *elasticsearch.TypedClient) NewsRepo {
	return &NewsRepoImpl{client: client}
}

// IndexNews 以更新时间作为外部版本号，旧版本写入被忽略
func (s *NewsRepoImpl) IndexNews(ctx context.Context, news *NewsES) error {
	docID := strconv.FormatUint(news.ID, 10)

	_, err := s.client.Index(NewsIndex).
		Id(docID).
		Document(news).
		Version(strconv.FormatInt(news.UpdatedAt.UnixMilli(), 10)).
		VersionType(versiontype.External).
		Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == ConflictCode {
			return nil
		}
		return err
	}
	return nil
}

func (s *NewsRepoImpl) DeleteNews(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(NewsIndex, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}
	return nil
}

// SearchNews 只返回命中的 id 与总数
func (s *NewsRepoImpl) SearchNews(ctx context.Context, keyword string, from, size int) ([]uint64, int64, error) {
	if keyword == "" || from >= MaxSearchDepth {
		return []uint64{}, 0, nil
	}

	fuzziness := "AUTO"
	res, err := s.client.Search().
		Index(NewsIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{{
					MultiMatch: &types.MultiMatchQuery{
						Query:     keyword,
						Fields:    []string{"title^3", "summary^2", "content", "channel_username", "tags^2"},
						Fuzziness: &fuzziness,
					},
				}},
				Filter: []types.Query{{
					Term: map[string]types.TermQuery{"status": {Value: "published"}},
				}},
			},
		}).
		Source_(&types.SourceFilter{Includes: []string{"id"}}).
		TrackTotalHits(true).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc NewsES
		if hit.Source_ == nil {
			continue
		}
		if err = json.Unmarshal(hit.Source_, &doc); err != nil {
			continue
		}
		ids = append(ids, doc.ID)
	}

	var total int64
	if res.Hits.Total != nil {
		total = res.Hits.Total.Value
	}
	return ids, total, nil
}
