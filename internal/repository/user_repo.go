package repository

import (
	"Newsroom/internal/model"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	GetUserByID(ctx context.Context, id uint64) (*model.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint64) ([]*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	// CreateUserIfAbsent 插入用户，唯一约束冲突时返回 false 且不报错
	CreateUserIfAbsent(ctx context.Context, user *model.User) (bool, error)
	UpdateProfile(ctx context.Context, id uint64, fields map[string]interface{}) error
	UpdateRole(ctx context.Context, id uint64, role string) (int64, error)
	UpdateStatus(ctx context.Context, id uint64, status string) (int64, error)
	SearchUsers(ctx context.Context, keyword string, limit, offset int) ([]*model.User, int64, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserAbsent
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUserByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("external_id = ?", externalID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserAbsent
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserAbsent
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUsersByIDs(ctx context.Context, ids []uint64) ([]*model.User, error) {
	var users []*model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (s *UserRepoImpl) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (s *UserRepoImpl) CreateUserIfAbsent(ctx context.Context, user *model.User) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if res.Error != nil {
		if IsDuplicateError(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *UserRepoImpl) UpdateProfile(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 值未变化时 MySQL 也返回 0，需要确认用户是否存在
		if _, err := s.GetUserByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *UserRepoImpl) UpdateRole(ctx context.Context, id uint64, role string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("role", role)
	return res.RowsAffected, res.Error
}

func (s *UserRepoImpl) UpdateStatus(ctx context.Context, id uint64, status string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}

// likeEscaper 以 ! 为转义符，让关键字中的通配符按字面匹配
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (s *UserRepoImpl) SearchUsers(ctx context.Context, keyword string, limit, offset int) ([]*model.User, int64, error) {
	keyword = strings.TrimSpace(keyword)
	filter := func(db *gorm.DB) *gorm.DB {
		if keyword == "" {
			return db
		}
		like := "%" + likeEscaper.Replace(keyword) + "%"
		return db.Where(`username LIKE ? ESCAPE '!' OR email LIKE ? ESCAPE '!' OR first_name LIKE ? ESCAPE '!' OR last_name LIKE ? ESCAPE '!'`,
			like, like, like, like)
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*model.User
	err := s.db.WithContext(ctx).Scopes(filter).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, total, err
}
