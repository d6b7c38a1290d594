package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

// ListComments 按楼层返回，回复挂在父评论下
func (s *CommentHandler) ListComments(c *gin.Context) {
	newsID, ok := util.ParseUint64(c.Param("news_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewerID := c.GetUint64("user_id")

	comments, err := s.commentSvc.ListComments(c.Request.Context(), newsID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	newsID, ok := util.ParseUint64(c.Param("news_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.CreateComment(c.Request.Context(), userID, newsID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Comment created successfully", comment)
}

func (s *CommentHandler) ReplyComment(c *gin.Context) {
	parentID, ok := util.ParseUint64(c.Param("comment_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.ReplyComment(c.Request.Context(), userID, parentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Reply created successfully", comment)
}

func (s *CommentHandler) ToggleLike(c *gin.Context) {
	commentID, ok := util.ParseUint64(c.Param("comment_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	result, err := s.commentSvc.ToggleCommentLike(c.Request.Context(), userID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, toggleMessage(result, "Liked", "Unliked"), result)
}
