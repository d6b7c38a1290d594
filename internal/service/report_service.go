package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type ReportService interface {
	CreateReport(ctx context.Context, reporterID uint64, req *dto.CreateReportDTO) (*dto.ReportDTO, error)
	ListReports(ctx context.Context, status string, page util.Page) (*dto.PageDTO[*dto.ReportDTO], error)
	ResolveReport(ctx context.Context, resolverID, reportID uint64, status string) (*dto.ReportDTO, error)
}

type reportServiceImpl struct {
	reportRepo repository.ReportRepo
}

func NewReportService(reportRepo repository.ReportRepo) ReportService {
	return &reportServiceImpl{
		reportRepo: reportRepo,
	}
}

func (s *reportServiceImpl) CreateReport(ctx context.Context, reporterID uint64, req *dto.CreateReportDTO) (*dto.ReportDTO, error) {
	if req == nil || req.TargetID == 0 {
		return nil, ErrParamInvalid
	}
	if !model.IsValidReportTarget(req.TargetType) {
		return nil, ErrInvalidReportTarget
	}
	reason := util.SanitizeComment(req.Reason)
	if reason == "" {
		return nil, ErrParamInvalid
	}

	exists, err := s.reportRepo.TargetExists(ctx, req.TargetType, req.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrReportTargetNotFound
	}

	report := &model.Report{
		ReporterID: reporterID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reason:     reason,
		Status:     model.ReportStatusPending,
	}
	if err = s.reportRepo.CreateReport(ctx, report); err != nil {
		return nil, err
	}
	return toReportDTO(report), nil
}

// ListReports status 为空时不过滤
func (s *reportServiceImpl) ListReports(ctx context.Context, status string, page util.Page) (*dto.PageDTO[*dto.ReportDTO], error) {
	if status != "" && status != model.ReportStatusPending && !model.IsValidReportResolution(status) {
		return nil, ErrInvalidStatus
	}

	reports, total, err := s.reportRepo.ListReports(ctx, status, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ReportDTO, 0, len(reports))
	for _, r := range reports {
		items = append(items, toReportDTO(r))
	}
	return &dto.PageDTO[*dto.ReportDTO]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.Size,
		TotalPages: page.TotalPages(total),
		TotalCount: total,
	}, nil
}

func (s *reportServiceImpl) ResolveReport(ctx context.Context, resolverID, reportID uint64, status string) (*dto.ReportDTO, error) {
	if !model.IsValidReportResolution(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.reportRepo.ResolveReport(ctx, reportID, status, resolverID); err != nil {
		return nil, translateRepoErr(err)
	}
	report, err := s.reportRepo.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return toReportDTO(report), nil
}

func toReportDTO(r *model.Report) *dto.ReportDTO {
	result := &dto.ReportDTO{}
	_ = copier.Copy(result, r)
	return result
}
