package dto

import "time"

type ReportDTO struct {
	ID         uint64    `json:"id"`
	ReporterID uint64    `json:"reporterId"`
	TargetType string    `json:"targetType"`
	TargetID   uint64    `json:"targetId"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	ResolvedBy *uint64   `json:"resolvedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateReportDTO struct {
	TargetType string `json:"targetType" validate:"required"`
	TargetID   uint64 `json:"targetId" validate:"required"`
	Reason     string `json:"reason" validate:"required,max=500"`
}

type ResolveReportDTO struct {
	Status string `json:"status" validate:"required"`
}
