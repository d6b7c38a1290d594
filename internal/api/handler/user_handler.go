package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	identitySvc service.IdentityService
	userSvc     service.UserService
	newsSvc     service.NewsService
	cascadeSvc  service.CascadeService
}

func NewUserHandler(
	identitySvc service.IdentityService,
	userSvc service.UserService,
	newsSvc service.NewsService,
	cascadeSvc service.CascadeService,
) *UserHandler {
	return &UserHandler{
		identitySvc: identitySvc,
		userSvc:     userSvc,
		newsSvc:     newsSvc,
		cascadeSvc:  cascadeSvc,
	}
}

// Sync 登录后首次调用，把外部身份同步为本地用户
func (s *UserHandler) Sync(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, service.ErrUnauthorized)
		return
	}

	user, err := s.identitySvc.Sync(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	me, err := s.userSvc.GetMe(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "User synced successfully", me)
}

func (s *UserHandler) GetMe(c *gin.Context) {
	userID := c.GetUint64("user_id")

	user, err := s.userSvc.GetMe(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := s.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteMe 注销自己，级联删除全部数据
func (s *UserHandler) DeleteMe(c *gin.Context) {
	userID := c.GetUint64("user_id")

	report, err := s.cascadeSvc.DeleteUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "User deleted successfully", report)
}

func (s *UserHandler) GetProfile(c *gin.Context) {
	user, err := s.userSvc.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// GetFollowing 当前用户关注的内容
func (s *UserHandler) GetFollowing(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page := util.ParsePage(c.Query("page"), c.Query("pageSize"))

	list, err := s.newsSvc.ListFollowing(c.Request.Context(), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
