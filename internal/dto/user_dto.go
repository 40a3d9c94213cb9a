package dto

type ProfileResponse struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Avatar   *string `json:"avatar"`
	Bio      *string `json:"bio"`
	Provider string  `json:"provider"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=200"`
	Bio      *string `json:"bio" validate:"omitempty,max=1000"`
	Avatar   *string `json:"avatar" validate:"omitempty,max=500"`
}
