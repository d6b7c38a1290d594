package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/service"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsSvc        service.NewsService
	interactionSvc service.InteractionService
}

func NewNewsHandler(newsSvc service.NewsService, interactionSvc service.InteractionService) *NewsHandler {
	return &NewsHandler{
		newsSvc:        newsSvc,
		interactionSvc: interactionSvc,
	}
}

func (s *NewsHandler) ListNews(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	page := util.ParsePage(c.Query("page"), c.Query("pageSize"))

	list, err := s.newsSvc.ListNews(c.Request.Context(), page, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NewsHandler) ListChannelNews(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	page := util.ParsePage(c.Query("page"), c.Query("pageSize"))

	list, err := s.newsSvc.ListChannelNews(c.Request.Context(), c.Param("channel"), page, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NewsHandler) SearchNews(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page := util.ParsePage(c.Query("page"), c.Query("pageSize"))

	list, err := s.newsSvc.SearchNews(c.Request.Context(), keyword, page, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetNews 详情，同时计入一次浏览
func (s *NewsHandler) GetNews(c *gin.Context) {
	newsID, ok := util.ParseUint64(c.Param("news_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewerID := c.GetUint64("user_id")

	detail, err := s.newsSvc.GetNewsDetail(c.Request.Context(), newsID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

func (s *NewsHandler) CreateNews(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.CreateNewsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	news, err := s.newsSvc.CreateNews(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "News created successfully", news)
}

func (s *NewsHandler) DeleteNews(c *gin.Context) {
	newsID, ok := util.ParseUint64(c.Param("news_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	report, err := s.newsSvc.DeleteNews(c.Request.Context(), userID, c.GetString(middleware.RoleKey), newsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "News deleted successfully", report)
}

func (s *NewsHandler) ListBookmarks(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page := util.ParsePage(c.Query("page"), c.Query("pageSize"))

	list, err := s.newsSvc.ListBookmarks(c.Request.Context(), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NewsHandler) ToggleLike(c *gin.Context) {
	s.toggle(c, s.interactionSvc.ToggleLike, "Liked", "Unliked")
}

func (s *NewsHandler) ToggleRepost(c *gin.Context) {
	s.toggle(c, s.interactionSvc.ToggleRepost, "Reposted", "Unreposted")
}

func (s *NewsHandler) ToggleBookmark(c *gin.Context) {
	s.toggle(c, s.interactionSvc.ToggleBookmark, "Bookmarked", "Unbookmarked")
}

func (s *NewsHandler) ToggleFollow(c *gin.Context) {
	s.toggle(c, s.interactionSvc.ToggleFollow,
		"News channel followed successfully", "News channel unfollowed successfully")
}

type toggleFunc func(ctx context.Context, userID, newsID uint64) (*dto.ToggleDTO, error)

func (s *NewsHandler) toggle(c *gin.Context, fn toggleFunc, addedMsg, removedMsg string) {
	newsID, ok := util.ParseUint64(c.Param("news_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	result, err := fn(c.Request.Context(), userID, newsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, toggleMessage(result, addedMsg, removedMsg), result)
}

func toggleMessage(result *dto.ToggleDTO, addedMsg, removedMsg string) string {
	if result.State == consts.ToggleAdded {
		return addedMsg
	}
	return removedMsg
}
