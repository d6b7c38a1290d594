package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/repository"
	"context"
	"errors"
	"strings"

	"github.com/jinzhu/copier"
)

type UserService interface {
	GetMe(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	GetProfile(ctx context.Context, username string) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, userID uint64, req *dto.UpdateProfileDTO) (*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) GetMe(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return toUserDTO(user), nil
}

// GetProfile 公开资料不包含邮箱和状态
func (s *userServiceImpl) GetProfile(ctx context.Context, username string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, translateRepoErr(err)
	}
	profile := toUserDTO(user)
	profile.Email = ""
	profile.Status = ""
	return profile, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uint64, req *dto.UpdateProfileDTO) (*dto.UserDTO, error) {
	if req == nil {
		return nil, ErrParamInvalid
	}

	fields := make(map[string]interface{})
	if req.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Username != nil {
		username := normalizeUsername(*req.Username)
		if len(username) < 3 {
			return nil, ErrParamInvalid
		}
		owner, err := s.userRepo.GetUserByUsername(ctx, username)
		switch {
		case err == nil && owner.ID != userID:
			return nil, ErrUsernameTaken
		case err != nil && !errors.Is(err, repository.ErrUserAbsent):
			return nil, err
		}
		fields["username"] = username
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, fields); err != nil {
		if repository.IsDuplicateError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, translateRepoErr(err)
	}
	return s.GetMe(ctx, userID)
}

func toUserDTO(u *model.User) *dto.UserDTO {
	result := &dto.UserDTO{}
	_ = copier.Copy(result, u)
	return result
}
