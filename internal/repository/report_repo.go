package repository

import (
	"Newsroom/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ReportRepo interface {
	CreateReport(ctx context.Context, report *model.Report) error
	GetReportByID(ctx context.Context, id uint64) (*model.Report, error)
	ListReports(ctx context.Context, status string, limit, offset int) ([]*model.Report, int64, error)
	ResolveReport(ctx context.Context, id uint64, status string, resolverID uint64) error
	TargetExists(ctx context.Context, targetType string, targetID uint64) (bool, error)
}

type ReportRepoImpl struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepo {
	return &ReportRepoImpl{db: db}
}

func (s *ReportRepoImpl) CreateReport(ctx context.Context, report *model.Report) error {
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *ReportRepoImpl) GetReportByID(ctx context.Context, id uint64) (*model.Report, error) {
	var report model.Report
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportAbsent
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports status 为空时返回全部
func (s *ReportRepoImpl) ListReports(ctx context.Context, status string, limit, offset int) ([]*model.Report, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", status)
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Report{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	reports := make([]*model.Report, 0, limit)
	if int64(offset) >= total {
		return reports, total, nil
	}
	err := s.db.WithContext(ctx).Scopes(filter).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&reports).Error
	return reports, total, err
}

func (s *ReportRepoImpl) ResolveReport(ctx context.Context, id uint64, status string, resolverID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report model.Report
		err := tx.Select("id").Where("id = ?", id).Take(&report).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportAbsent
		}
		if err != nil {
			return err
		}
		return tx.Model(&model.Report{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":      status,
			"resolved_by": resolverID,
		}).Error
	})
}

// TargetExists 举报对象是否存在
func (s *ReportRepoImpl) TargetExists(ctx context.Context, targetType string, targetID uint64) (bool, error) {
	var table any
	switch targetType {
	case model.ReportTargetNews:
		table = &model.News{}
	case model.ReportTargetComment:
		table = &model.Comment{}
	case model.ReportTargetUser:
		table = &model.User{}
	default:
		return false, nil
	}

	var count int64
	err := s.db.WithContext(ctx).Model(table).Where("id = ?", targetID).Count(&count).Error
	return count > 0, err
}
