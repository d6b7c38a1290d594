package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminSvc: adminSvc,
	}
}

func (s *AdminHandler) ListUsers(c *gin.Context) {
	page := util.ParsePage(c.Query("page"), c.Query("pageSize"))

	list, err := s.adminSvc.ListUsers(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, ok := util.ParseUint64(c.Param("user_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	adminID := c.GetUint64("user_id")

	var req dto.UpdateRoleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := s.adminSvc.UpdateUserRole(c.Request.Context(), adminID, userID, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "User role updated", user)
}

func (s *AdminHandler) UpdateUserStatus(c *gin.Context) {
	userID, ok := util.ParseUint64(c.Param("user_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	adminID := c.GetUint64("user_id")

	var req dto.UpdateStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := s.adminSvc.UpdateUserStatus(c.Request.Context(), adminID, userID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "User status updated", user)
}

func (s *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := util.ParseUint64(c.Param("user_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	adminID := c.GetUint64("user_id")

	report, err := s.adminSvc.DeleteUser(c.Request.Context(), adminID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "User deleted successfully", report)
}

func (s *AdminHandler) ListReports(c *gin.Context) {
	page := util.ParsePage(c.Query("page"), c.Query("pageSize"))

	list, err := s.adminSvc.ListReports(c.Request.Context(), c.Query("status"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *AdminHandler) ResolveReport(c *gin.Context) {
	reportID, ok := util.ParseUint64(c.Param("report_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	adminID := c.GetUint64("user_id")

	var req dto.ResolveReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	report, err := s.adminSvc.ResolveReport(c.Request.Context(), adminID, reportID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Report updated", report)
}

func (s *AdminHandler) RecountNews(c *gin.Context) {
	newsID, ok := util.ParseUint64(c.Param("news_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	adminID := c.GetUint64("user_id")

	result, err := s.adminSvc.RecountNews(c.Request.Context(), adminID, newsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RecountAll 全量重算，耗时较长
func (s *AdminHandler) RecountAll(c *gin.Context) {
	adminID := c.GetUint64("user_id")

	summary, err := s.adminSvc.RecountAll(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

func (s *AdminHandler) CleanupOrphans(c *gin.Context) {
	adminID := c.GetUint64("user_id")

	report, err := s.adminSvc.CleanupOrphans(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

func (s *AdminHandler) ListLogs(c *gin.Context) {
	page := util.ParsePage(c.Query("page"), c.Query("pageSize"))

	list, err := s.adminSvc.ListLogs(c.Request.Context(), c.Query("action"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
