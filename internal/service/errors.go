package service

import (
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrMissingEmail         = errors.New("身份信息缺少邮箱")
	ErrEmptyComment         = errors.New("评论内容不能为空")
	ErrInvalidRole          = errors.New("无效的角色")
	ErrInvalidStatus        = errors.New("无效的状态")
	ErrInvalidCategory      = errors.New("无效的分类")
	ErrInvalidReportTarget  = errors.New("无效的举报对象")
	ErrUsernameTaken        = errors.New("用户名已存在")
	ErrOperateSelf          = errors.New("不能对自己执行该操作")
	ErrUnauthorized         = errors.New("未登录或登录已失效")
	ErrForbidden            = errors.New("权限不足")
	ErrUserBanned           = errors.New("用户已被封禁或停用")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrNewsNotFound         = errors.New("内容不存在")
	ErrCommentNotFound      = errors.New("评论不存在")
	ErrReportNotFound       = errors.New("举报不存在")
	ErrReportTargetNotFound = errors.New("举报对象不存在")
	ErrRecountRunning       = errors.New("重算任务正在执行")
	// ErrConflictIgnored 切换时并发插入冲突，只在服务内部重试，不对外暴露
	ErrConflictIgnored = errors.New("切换冲突")
	UnExpectedError    = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	util.ErrValidation:      BadRequest,
	ErrMissingEmail:         BadRequest,
	ErrEmptyComment:         BadRequest,
	ErrInvalidRole:          BadRequest,
	ErrInvalidStatus:        BadRequest,
	ErrInvalidCategory:      BadRequest,
	ErrInvalidReportTarget:  BadRequest,
	ErrUsernameTaken:        BadRequest,
	ErrOperateSelf:          BadRequest,
	ErrUnauthorized:         Unauthorized,
	ErrForbidden:            Forbidden,
	ErrUserBanned:           Forbidden,
	ErrUserNotFound:         NotFound,
	ErrNewsNotFound:         NotFound,
	ErrCommentNotFound:      NotFound,
	ErrReportNotFound:       NotFound,
	ErrReportTargetNotFound: NotFound,
	ErrRecountRunning:       BadRequest,
	UnExpectedError:         InternalServerError,
}

// IsInvalidInput 调用方无法通过重试解决的输入错误
func IsInvalidInput(err error) bool {
	code, ok := LookupCode(err)
	return ok && code == BadRequest
}

// LookupCode 沿错误链查找业务码
func LookupCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return 0, false
}

// translateRepoErr 仓储层哨兵错误转为服务层错误
func translateRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserAbsent):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrNewsAbsent):
		return ErrNewsNotFound
	case errors.Is(err, repository.ErrCommentAbsent):
		return ErrCommentNotFound
	case errors.Is(err, repository.ErrReportAbsent):
		return ErrReportNotFound
	case errors.Is(err, repository.ErrEdgeConflict):
		return ErrConflictIgnored
	}
	return err
}
