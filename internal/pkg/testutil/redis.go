package testutil

import (
	"Newsroom/internal/pkg/redis"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

// InitTestRedis 用 miniredis 替换全局客户端
func InitTestRedis(t testing.TB) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = redis.Rdb.Close()
	})
	return mr
}
