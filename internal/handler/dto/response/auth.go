package response

import (
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/usecase/commands"
	"grocery-api/internal/usecase/queries"
)

type LoginResponse struct {
	UserID      uuid.UUID `json:"userId"`
	Role        string    `json:"role"`
	AccessToken string    `json:"accessToken"`
}

type SendCodeResponse struct {
	ExpiresAt         time.Time `json:"expiresAt"`
	AttemptsRemaining int       `json:"attemptsRemaining"`
}

type VerifyCodeResponse struct {
	CustomToken string `json:"customToken,omitempty"`
	ResetToken  string `json:"resetToken,omitempty"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Role      string    `json:"role"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		UserID:      r.UserID,
		Role:        r.Role,
		AccessToken: r.AccessToken,
	}
}

func FromSendCodeResult(r *commands.SendCodeResult) *SendCodeResponse {
	return &SendCodeResponse{
		ExpiresAt:         r.ExpiresAt,
		AttemptsRemaining: r.AttemptsRemaining,
	}
}

func FromVerifyCodeResult(r *commands.VerifyCodeResult) *VerifyCodeResponse {
	return &VerifyCodeResponse{
		CustomToken: r.CustomToken,
		ResetToken:  r.ResetToken,
	}
}

func FromUserView(v *queries.AuthorizedUserView) *UserResponse {
	return &UserResponse{
		ID:        v.ID,
		Phone:     v.Phone,
		Email:     v.Email,
		FirstName: v.FirstName,
		LastName:  v.LastName,
		Role:      v.Role,
	}
}
