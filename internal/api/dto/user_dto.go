package dto

import "time"

type UserDTO struct {
	ID             uint64    `json:"id"`
	Email          string    `json:"email,omitempty"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profilePicture"`
	Location       string    `json:"location"`
	Role           string    `json:"role"`
	Status         string    `json:"status,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UserBriefDTO 列表中展示的作者信息
type UserBriefDTO struct {
	ID             uint64 `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ProfilePicture string `json:"profilePicture"`
}

type UpdateProfileDTO struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,max=50"`
	Username  *string `json:"username" validate:"omitempty,min=3,max=30"`
	Location  *string `json:"location" validate:"omitempty,max=100"`
}

type UpdateRoleDTO struct {
	Role string `json:"role" validate:"required"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required"`
}
