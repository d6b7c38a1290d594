package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrUserAbsent    = errors.New("user absent")
	ErrNewsAbsent    = errors.New("news absent")
	ErrCommentAbsent = errors.New("comment absent")
	ErrReportAbsent  = errors.New("report absent")
	// ErrEdgeConflict 插入边时命中唯一约束，说明并发请求已先一步写入
	ErrEdgeConflict = errors.New("edge insert conflicted")
)

// IsDuplicateError 唯一键冲突
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
