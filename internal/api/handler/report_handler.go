package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportSvc service.ReportService
}

func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportSvc: reportSvc,
	}
}

func (s *ReportHandler) CreateReport(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.CreateReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	report, err := s.reportSvc.CreateReport(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Report submitted successfully", report)
}
