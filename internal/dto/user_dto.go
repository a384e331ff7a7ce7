package dto

import "time"

type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

type ProfileResponse struct {
	UserDTO
	UpdatedAt time.Time `json:"updated_at"`
}
