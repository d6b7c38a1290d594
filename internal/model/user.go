package model

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleWriter = "writer"
	RoleEditor = "editor"
	RoleUser   = "user"
)

const (
	UserStatusActive    = "active"
	UserStatusBanned    = "banned"
	UserStatusSuspended = "suspended"
)

type User struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	ExternalID     string    `gorm:"type:varchar(191);not null;uniqueIndex:idx_users_external_id" json:"externalId"`
	Email          string    `gorm:"type:varchar(255);not null;index:idx_users_email" json:"email"`
	FirstName      string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName       string    `gorm:"type:varchar(100)" json:"lastName"`
	Username       string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_users_username" json:"username"`
	ProfilePicture string    `gorm:"type:varchar(512)" json:"profilePicture"`
	Location       string    `gorm:"type:varchar(128)" json:"location"`
	Role           string    `gorm:"type:varchar(16);not null;default:user" json:"role"`
	Status         string    `gorm:"type:varchar(16);not null;default:active" json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// IsValidRole 角色枚举校验
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleWriter, RoleEditor, RoleUser:
		return true
	}
	return false
}

// IsValidUserStatus 状态枚举校验
func IsValidUserStatus(status string) bool {
	switch status {
	case UserStatusActive, UserStatusBanned, UserStatusSuspended:
		return true
	}
	return false
}
