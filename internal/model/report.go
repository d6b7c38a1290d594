package model

import (
	"time"
)

const (
	ReportTargetNews    = "news"
	ReportTargetComment = "comment"
	ReportTargetUser    = "user"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

type Report struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	ReporterID uint64    `gorm:"not null;index:idx_reports_reporter" json:"reporterId"`
	TargetType string    `gorm:"type:varchar(16);not null;index:idx_reports_target,priority:1" json:"targetType"`
	TargetID   uint64    `gorm:"not null;index:idx_reports_target,priority:2" json:"targetId"`
	Reason     string    `gorm:"type:varchar(500);not null" json:"reason"`
	Status     string    `gorm:"type:varchar(16);not null;default:pending;index:idx_reports_status" json:"status"`
	ResolvedBy *uint64   `json:"resolvedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Report) TableName() string {
	return "reports"
}

func IsValidReportTarget(targetType string) bool {
	switch targetType {
	case ReportTargetNews, ReportTargetComment, ReportTargetUser:
		return true
	}
	return false
}

// IsValidReportResolution 处理结果只能是非 pending 状态
func IsValidReportResolution(status string) bool {
	switch status {
	case ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}
