package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/logger"
	"Newsroom/internal/pkg/mongo"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"
	"context"
	log "log/slog"
	"time"
)

const (
	ActionUserRole      = "user.role"
	ActionUserStatus    = "user.status"
	ActionUserDelete    = "user.delete"
	ActionReportResolve = "report.resolve"
	ActionNewsRecount   = "news.recount"
	ActionRecountAll    = "maintenance.recount"
	ActionOrphanCleanup = "maintenance.orphans"
)

type AdminService interface {
	ListUsers(ctx context.Context, keyword string, page util.Page) (*dto.PageDTO[*dto.UserDTO], error)
	UpdateUserRole(ctx context.Context, adminID, userID uint64, role string) (*dto.UserDTO, error)
	UpdateUserStatus(ctx context.Context, adminID, userID uint64, status string) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, adminID, userID uint64) (*repository.UserDeletionReport, error)
	ListReports(ctx context.Context, status string, page util.Page) (*dto.PageDTO[*dto.ReportDTO], error)
	ResolveReport(ctx context.Context, adminID, reportID uint64, status string) (*dto.ReportDTO, error)
	RecountNews(ctx context.Context, adminID, newsID uint64) (*repository.RecountResult, error)
	RecountAll(ctx context.Context, adminID uint64) (*dto.RecountSummaryDTO, error)
	CleanupOrphans(ctx context.Context, adminID uint64) (*repository.OrphanReport, error)
	ListLogs(ctx context.Context, action string, page util.Page) (*dto.PageDTO[*mongo.AdminLogModel], error)
}

type adminServiceImpl struct {
	userRepo       repository.UserRepo
	adminLogRepo   mongo.AdminLogRepo
	reportService  ReportService
	cascadeService CascadeService
	counterService CounterService
}

func NewAdminService(
	userRepo repository.UserRepo,
	adminLogRepo mongo.AdminLogRepo,
	reportService ReportService,
	cascadeService CascadeService,
	counterService CounterService,
) AdminService {
	return &adminServiceImpl{
		userRepo:       userRepo,
		adminLogRepo:   adminLogRepo,
		reportService:  reportService,
		cascadeService: cascadeService,
		counterService: counterService,
	}
}

func (s *adminServiceImpl) ListUsers(ctx context.Context, keyword string, page util.Page) (*dto.PageDTO[*dto.UserDTO], error) {
	users, total, err := s.userRepo.SearchUsers(ctx, keyword, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		items = append(items, toUserDTO(u))
	}
	return &dto.PageDTO[*dto.UserDTO]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.Size,
		TotalPages: page.TotalPages(total),
		TotalCount: total,
	}, nil
}

func (s *adminServiceImpl) UpdateUserRole(ctx context.Context, adminID, userID uint64, role string) (*dto.UserDTO, error) {
	if !model.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	if adminID == userID {
		return nil, ErrOperateSelf
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	if _, err = s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}

	s.record(ctx, adminID, ActionUserRole, "user", userID, map[string]any{"from": user.Role, "to": role})
	user.Role = role
	return toUserDTO(user), nil
}

func (s *adminServiceImpl) UpdateUserStatus(ctx context.Context, adminID, userID uint64, status string) (*dto.UserDTO, error) {
	if !model.IsValidUserStatus(status) {
		return nil, ErrInvalidStatus
	}
	if adminID == userID {
		return nil, ErrOperateSelf
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	if _, err = s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return nil, err
	}

	s.record(ctx, adminID, ActionUserStatus, "user", userID, map[string]any{"from": user.Status, "to": status})
	user.Status = status
	return toUserDTO(user), nil
}

func (s *adminServiceImpl) DeleteUser(ctx context.Context, adminID, userID uint64) (*repository.UserDeletionReport, error) {
	if adminID == userID {
		return nil, ErrOperateSelf
	}
	report, err := s.cascadeService.DeleteUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.record(ctx, adminID, ActionUserDelete, "user", userID, map[string]any{
		"comments":     report.Comments,
		"bookmarks":    report.Bookmarks,
		"interactions": report.Interactions,
		"reports":      report.Reports,
	})
	return report, nil
}

func (s *adminServiceImpl) ListReports(ctx context.Context, status string, page util.Page) (*dto.PageDTO[*dto.ReportDTO], error) {
	return s.reportService.ListReports(ctx, status, page)
}

func (s *adminServiceImpl) ResolveReport(ctx context.Context, adminID, reportID uint64, status string) (*dto.ReportDTO, error) {
	report, err := s.reportService.ResolveReport(ctx, adminID, reportID, status)
	if err != nil {
		return nil, err
	}
	s.record(ctx, adminID, ActionReportResolve, "report", reportID, map[string]any{"status": status})
	return report, nil
}

func (s *adminServiceImpl) RecountNews(ctx context.Context, adminID, newsID uint64) (*repository.RecountResult, error) {
	result, err := s.counterService.Recount(ctx, newsID)
	if err != nil {
		return nil, err
	}
	s.record(ctx, adminID, ActionNewsRecount, "news", newsID, map[string]any{"corrected": result.Corrected})
	return result, nil
}

func (s *adminServiceImpl) RecountAll(ctx context.Context, adminID uint64) (*dto.RecountSummaryDTO, error) {
	summary, err := s.counterService.RecountAll(ctx)
	if err != nil {
		return nil, err
	}
	s.record(ctx, adminID, ActionRecountAll, "news", 0, map[string]any{"scanned": summary.Scanned, "corrected": summary.Corrected})
	return summary, nil
}

func (s *adminServiceImpl) CleanupOrphans(ctx context.Context, adminID uint64) (*repository.OrphanReport, error) {
	report, err := s.counterService.CleanupOrphans(ctx)
	if err != nil {
		return nil, err
	}
	s.record(ctx, adminID, ActionOrphanCleanup, "news", 0, map[string]any{
		"interactions": report.Interactions,
		"bookmarks":    report.Bookmarks,
		"comments":     report.Comments,
		"affected":     len(report.AffectedNewsIDs),
	})
	return report, nil
}

func (s *adminServiceImpl) ListLogs(ctx context.Context, action string, page util.Page) (*dto.PageDTO[*mongo.AdminLogModel], error) {
	if s.adminLogRepo == nil {
		return &dto.PageDTO[*mongo.AdminLogModel]{Items: []*mongo.AdminLogModel{}, Page: page.Page, PageSize: page.Size}, nil
	}
	logs, total, err := s.adminLogRepo.ListLogs(ctx, action, int64(page.Size), int64(page.Offset()))
	if err != nil {
		return nil, err
	}
	return &dto.PageDTO[*mongo.AdminLogModel]{
		Items:      logs,
		Page:       page.Page,
		PageSize:   page.Size,
		TotalPages: page.TotalPages(total),
		TotalCount: total,
	}, nil
}

// record 审计日志写入失败不影响操作结果
func (s *adminServiceImpl) record(ctx context.Context, adminID uint64, action, targetType string, targetID uint64, detail map[string]any) {
	if s.adminLogRepo == nil {
		return
	}
	traceID, _ := ctx.Value(logger.TraceIDKey).(string)
	entry := &mongo.AdminLogModel{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
		TraceID:    traceID,
		CreatedAt:  time.Now(),
	}
	if err := s.adminLogRepo.CreateLog(ctx, entry); err != nil {
		log.WarnContext(ctx, "write admin log failed", "action", action, "target_id", targetID, "err", err)
	}
}
