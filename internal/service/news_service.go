package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/es"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

type NewsService interface {
	ListNews(ctx context.Context, page util.Page, viewerID uint64) (*dto.PageDTO[*dto.NewsDTO], error)
	ListChannelNews(ctx context.Context, channel string, page util.Page, viewerID uint64) (*dto.PageDTO[*dto.NewsDTO], error)
	ListBookmarks(ctx context.Context, userID uint64, page util.Page) (*dto.PageDTO[*dto.NewsDTO], error)
	ListFollowing(ctx context.Context, userID uint64, page util.Page) (*dto.PageDTO[*dto.NewsDTO], error)
	SearchNews(ctx context.Context, keyword string, page util.Page, viewerID uint64) (*dto.PageDTO[*dto.NewsDTO], error)
	GetNews(ctx context.Context, newsID, viewerID uint64) (*dto.NewsDTO, error)
	GetNewsDetail(ctx context.Context, newsID, viewerID uint64) (*dto.NewsDetailDTO, error)
	CreateNews(ctx context.Context, authorID uint64, req *dto.CreateNewsDTO) (*dto.NewsDTO, error)
	IngestNews(ctx context.Context, req *dto.IngestNewsDTO) (*dto.NewsDTO, error)
	DeleteNews(ctx context.Context, userID uint64, role string, newsID uint64) (*repository.NewsDeletionReport, error)
}

type newsServiceImpl struct {
	newsRepo        repository.NewsRepo
	userRepo        repository.UserRepo
	interactionRepo repository.InteractionRepo
	commentService  CommentService
	cascadeService  CascadeService
	searchIndex     es.NewsRepo
}

func NewNewsService(
	newsRepo repository.NewsRepo,
	userRepo repository.UserRepo,
	interactionRepo repository.InteractionRepo,
	commentService CommentService,
	cascadeService CascadeService,
	searchIndex es.NewsRepo,
) NewsService {
	return &newsServiceImpl{
		newsRepo:        newsRepo,
		userRepo:        userRepo,
		interactionRepo: interactionRepo,
		commentService:  commentService,
		cascadeService:  cascadeService,
		searchIndex:     searchIndex,
	}
}

func (s *newsServiceImpl) ListNews(ctx context.Context, page util.Page, viewerID uint64) (*dto.PageDTO[*dto.NewsDTO], error) {
	list, total, err := s.newsRepo.ListNews(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	return s.buildPage(ctx, list, total, page, viewerID)
}

func (s *newsServiceImpl) ListChannelNews(ctx context.Context, channel string, page util.Page, viewerID uint64) (*dto.PageDTO[*dto.NewsDTO], error) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return nil, ErrParamInvalid
	}
	list, total, err := s.newsRepo.ListNewsByChannel(ctx, channel, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	return s.buildPage(ctx, list, total, page, viewerID)
}

func (s *newsServiceImpl) ListBookmarks(ctx context.Context, userID uint64, page util.Page) (*dto.PageDTO[*dto.NewsDTO], error) {
	list, total, err := s.newsRepo.ListBookmarkedNews(ctx, userID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	return s.buildPage(ctx, list, total, page, userID)
}

func (s *newsServiceImpl) ListFollowing(ctx context.Context, userID uint64, page util.Page) (*dto.PageDTO[*dto.NewsDTO], error) {
	list, total, err := s.newsRepo.ListFollowedNews(ctx, userID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	return s.buildPage(ctx, list, total, page, userID)
}

// SearchNews 检索只给出 id，内容与计数回库读取
func (s *newsServiceImpl) SearchNews(ctx context.Context, keyword string, page util.Page, viewerID uint64) (*dto.PageDTO[*dto.NewsDTO], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrParamInvalid
	}
	if s.searchIndex == nil {
		return s.buildPage(ctx, nil, 0, page, viewerID)
	}

	ids, total, err := s.searchIndex.SearchNews(ctx, keyword, page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}
	list, err := s.newsRepo.GetNewsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*model.News, len(list))
	for _, n := range list {
		byID[n.ID] = n
	}
	ordered := make([]*model.News, 0, len(ids))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			ordered = append(ordered, n)
		}
	}
	return s.buildPage(ctx, ordered, total, page, viewerID)
}

func (s *newsServiceImpl) GetNews(ctx context.Context, newsID, viewerID uint64) (*dto.NewsDTO, error) {
	news, err := s.newsRepo.GetNewsByID(ctx, newsID)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	items, err := s.decorate(ctx, []*model.News{news}, viewerID)
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

// GetNewsDetail 计入一次浏览，并行装配内容与评论树
func (s *newsServiceImpl) GetNewsDetail(ctx context.Context, newsID, viewerID uint64) (*dto.NewsDetailDTO, error) {
	if err := s.newsRepo.IncrementView(ctx, newsID); err != nil {
		return nil, translateRepoErr(err)
	}

	detail := &dto.NewsDetailDTO{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		item, err := s.GetNews(gctx, newsID, viewerID)
		detail.NewsDTO = item
		return err
	})
	g.Go(func() error {
		comments, err := s.commentService.ListComments(gctx, newsID, viewerID)
		detail.Comments = comments
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *newsServiceImpl) CreateNews(ctx context.Context, authorID uint64, req *dto.CreateNewsDTO) (*dto.NewsDTO, error) {
	if req == nil || strings.TrimSpace(req.Title) == "" {
		return nil, ErrParamInvalid
	}
	category, err := normalizeCategory(req.Category)
	if err != nil {
		return nil, err
	}

	content := util.SanitizeContent(req.Content)
	summary := strings.TrimSpace(req.Summary)
	if summary == "" {
		summary = util.ExtractSummary(content)
	}
	tags := req.Tags
	if len(tags) == 0 {
		tags = util.ExtractTags(util.PlainText(content))
	}

	now := time.Now()
	news := &model.News{
		Title:       strings.TrimSpace(req.Title),
		Slug:        util.PtrStr(util.Slugify(req.Title)),
		Summary:     summary,
		Content:     content,
		CoverImage:  req.CoverImage,
		MediaURL:    req.MediaURL,
		AuthorID:    util.PtrUint64(authorID),
		Category:    category,
		Tags:        tags,
		Status:      model.NewsStatusPublished,
		PublishedAt: &now,
	}
	if err = s.newsRepo.CreateNews(ctx, news); err != nil {
		return nil, err
	}

	s.index(ctx, news)
	return s.GetNews(ctx, news.ID, authorID)
}

// IngestNews 外部频道内容按 telegram_id 幂等写入
func (s *newsServiceImpl) IngestNews(ctx context.Context, req *dto.IngestNewsDTO) (*dto.NewsDTO, error) {
	if req == nil {
		return nil, ErrParamInvalid
	}
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}
	category, err := normalizeCategory(req.Category)
	if err != nil {
		category = "Other"
	}

	content := util.SanitizeContent(req.Content)
	summary := util.ExtractSummary(content)
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = clipRunes(summary, 120)
	}

	publishedAt := req.PublishedAt
	if publishedAt == nil {
		now := time.Now()
		publishedAt = &now
	}

	news := &model.News{
		TelegramID:        util.PtrStr(strings.TrimSpace(req.TelegramID)),
		ChannelUsername:   strings.TrimSpace(req.ChannelUsername),
		ChannelProfilePic: req.ChannelProfilePic,
		MediaURL:          req.MediaURL,
		Title:             title,
		Summary:           summary,
		Content:           content,
		Category:          category,
		Tags:              util.ExtractTags(util.PlainText(content)),
		Status:            model.NewsStatusPublished,
		PublishedAt:       publishedAt,
	}
	stored, err := s.newsRepo.UpsertExternalNews(ctx, news)
	if err != nil {
		return nil, err
	}

	s.index(ctx, stored)
	items, err := s.decorate(ctx, []*model.News{stored}, 0)
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

// DeleteNews 作者本人或管理员可删除
func (s *newsServiceImpl) DeleteNews(ctx context.Context, userID uint64, role string, newsID uint64) (*repository.NewsDeletionReport, error) {
	news, err := s.newsRepo.GetNewsByID(ctx, newsID)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	isAuthor := news.AuthorID != nil && *news.AuthorID == userID
	if !isAuthor && role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.cascadeService.DeleteNews(ctx, newsID)
}

func (s *newsServiceImpl) index(ctx context.Context, news *model.News) {
	if s.searchIndex == nil {
		return
	}
	doc := &es.NewsES{
		ID:              news.ID,
		Title:           news.Title,
		Summary:         news.Summary,
		Content:         util.PlainText(news.Content),
		ChannelUsername: news.ChannelUsername,
		Category:        news.Category,
		Tags:            news.Tags,
		Status:          news.Status,
		CreatedAt:       news.CreatedAt,
		UpdatedAt:       news.UpdatedAt,
	}
	if err := s.searchIndex.IndexNews(ctx, doc); err != nil {
		log.WarnContext(ctx, "index news failed", "news_id", news.ID, "err", err)
	}
}

func (s *newsServiceImpl) buildPage(ctx context.Context, list []*model.News, total int64, page util.Page, viewerID uint64) (*dto.PageDTO[*dto.NewsDTO], error) {
	items, err := s.decorate(ctx, list, viewerID)
	if err != nil {
		return nil, err
	}
	return &dto.PageDTO[*dto.NewsDTO]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.Size,
		TotalPages: page.TotalPages(total),
		TotalCount: total,
	}, nil
}

// decorate 补充作者信息，有登录用户时补充交互状态
func (s *newsServiceImpl) decorate(ctx context.Context, list []*model.News, viewerID uint64) ([]*dto.NewsDTO, error) {
	items := make([]*dto.NewsDTO, 0, len(list))
	if len(list) == 0 {
		return items, nil
	}

	ids := make([]uint64, len(list))
	var authorIDs []uint64
	for i, n := range list {
		ids[i] = n.ID
		if n.AuthorID != nil {
			authorIDs = append(authorIDs, *n.AuthorID)
		}
	}

	authorMap := make(map[uint64]*model.User)
	if len(authorIDs) > 0 {
		authors, err := s.userRepo.GetUsersByIDs(ctx, authorIDs)
		if err != nil {
			return nil, err
		}
		for _, a := range authors {
			authorMap[a.ID] = a
		}
	}

	states, err := s.interactionRepo.GetViewerStates(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	for _, n := range list {
		item := &dto.NewsDTO{}
		if err = copier.Copy(item, n); err != nil {
			return nil, err
		}
		if item.Tags == nil {
			item.Tags = []string{}
		}
		if n.AuthorID != nil {
			item.Author = toUserBrief(authorMap[*n.AuthorID])
		}
		if st, ok := states[n.ID]; ok {
			item.IsLiked = st.Liked
			item.IsReposted = st.Reposted
			item.IsBookmarked = st.Bookmarked
			item.IsFollowing = st.Following
		}
		items = append(items, item)
	}
	return items, nil
}

func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "Other", nil
	}
	if !model.IsValidCategory(category) {
		return "", ErrInvalidCategory
	}
	return category, nil
}

func clipRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
