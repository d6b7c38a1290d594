// Package testutil 测试专用的存储替身，只能被 _test.go 引用
package testutil

import (
	"Newsroom/internal/pkg/database"
	"Newsroom/internal/pkg/logger"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTempDB 为单个测试创建独立的内存库并完成建表
func CreateTempDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.NewSilentGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open temp db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get temp db handle: %v", err)
	}
	// 单连接让内存库在事务间保持一致
	sqlDB.SetMaxOpenConns(1)

	if err = database.Migrate(db); err != nil {
		t.Fatalf("migrate temp db: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
