package service

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/es"
	"Newsroom/internal/pkg/identity"
	"Newsroom/internal/pkg/mongo"
	"Newsroom/internal/pkg/testutil"
	"Newsroom/internal/repository"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAssets struct {
	mu      sync.Mutex
	removed []string
	err     error
}

func (f *fakeAssets) Remove(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, url)
	return f.err
}

type fakeSearch struct {
	mu      sync.Mutex
	indexed map[uint64]*es.NewsES
	deleted []uint64
	hits    []uint64
}

func newFakeSearch() *fakeSearch {
	return &fakeSearch{indexed: make(map[uint64]*es.NewsES)}
}

func (f *fakeSearch) IndexNews(_ context.Context, news *es.NewsES) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed[news.ID] = news
	return nil
}

func (f *fakeSearch) DeleteNews(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	delete(f.indexed, id)
	return nil
}

func (f *fakeSearch) SearchNews(_ context.Context, _ string, from, size int) ([]uint64, int64, error) {
	total := int64(len(f.hits))
	if from >= len(f.hits) {
		return nil, total, nil
	}
	end := min(from+size, len(f.hits))
	return f.hits[from:end], total, nil
}

type fakeAdminLog struct {
	mu      sync.Mutex
	entries []*mongo.AdminLogModel
	err     error
}

func (f *fakeAdminLog) CreateLog(_ context.Context, entry *mongo.AdminLogModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAdminLog) ListLogs(_ context.Context, action string, limit, offset int64) ([]*mongo.AdminLogModel, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*mongo.AdminLogModel
	for _, e := range f.entries {
		if action == "" || e.Action == action {
			matched = append(matched, e)
		}
	}
	total := int64(len(matched))
	if offset >= total {
		return []*mongo.AdminLogModel{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

type fakeProvider struct {
	claims map[string]*identity.Claims
	calls  int
}

func (f *fakeProvider) GetUser(_ context.Context, externalID string) (*identity.Claims, error) {
	f.calls++
	c, ok := f.claims[externalID]
	if !ok {
		return nil, identity.ErrIdentityNotFound
	}
	return c, nil
}

var errAssetDown = errors.New("asset store unavailable")

type testEnv struct {
	db    *gorm.DB
	redis *miniredis.Miniredis

	assets   *fakeAssets
	search   *fakeSearch
	adminLog *fakeAdminLog
	provider *fakeProvider

	userRepo repository.UserRepo
	newsRepo repository.NewsRepo

	identity    IdentityService
	counter     CounterService
	cascade     CascadeService
	interaction InteractionService
	comment     CommentService
	news        NewsService
	user        UserService
	report      ReportService
	admin       AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		db:       testutil.CreateTempDB(t),
		redis:    testutil.InitTestRedis(t),
		assets:   &fakeAssets{},
		search:   newFakeSearch(),
		adminLog: &fakeAdminLog{},
		provider: &fakeProvider{claims: make(map[string]*identity.Claims)},
	}

	env.userRepo = repository.NewUserRepo(env.db)
	env.newsRepo = repository.NewNewsRepo(env.db)
	interactionRepo := repository.NewInteractionRepo(env.db)
	commentRepo := repository.NewCommentRepo(env.db)

	env.identity = NewIdentityService(env.userRepo, env.provider)
	env.counter = NewCounterService(repository.NewCounterRepo(env.db), env.newsRepo)
	env.cascade = NewCascadeService(repository.NewCascadeRepo(env.db), env.userRepo, env.assets, env.search, env.counter)
	env.interaction = NewInteractionService(interactionRepo)
	env.comment = NewCommentService(commentRepo, env.newsRepo, env.userRepo)
	env.news = NewNewsService(env.newsRepo, env.userRepo, interactionRepo, env.comment, env.cascade, env.search)
	env.user = NewUserService(env.userRepo)
	env.report = NewReportService(repository.NewReportRepo(env.db))
	env.admin = NewAdminService(env.userRepo, env.adminLog, env.report, env.cascade, env.counter)
	return env
}

func (e *testEnv) mustUser(t *testing.T, externalID, email string) *model.User {
	t.Helper()
	user, err := e.identity.Resolve(t.Context(), &identity.Claims{ExternalID: externalID, Email: email})
	require.NoError(t, err)
	return user
}

func (e *testEnv) mustNews(t *testing.T, title string) *model.News {
	t.Helper()
	news := &model.News{
		Title:           title,
		ChannelUsername: "channel",
		Category:        "Tech",
		Status:          model.NewsStatusPublished,
	}
	require.NoError(t, e.newsRepo.CreateNews(t.Context(), news))
	return news
}

func (e *testEnv) reload(t *testing.T, id uint64) *model.News {
	t.Helper()
	news, err := e.newsRepo.GetNewsByID(t.Context(), id)
	require.NoError(t, err)
	return news
}
