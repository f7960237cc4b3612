package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
)

type UserData struct {
	ID          int64      `json:"id,string"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	IsVerified  bool       `json:"isVerified"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func toUserData(user entity.User) UserData {
	return UserData{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		IsVerified:  user.IsVerified,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User    UserData `json:"user"`
	Message string   `json:"message"`
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

type VerifyEmailRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otpCode"`
}

type VerifyEmailResponse struct {
	User    UserData `json:"user"`
	Token   string   `json:"token"`
	Message string   `json:"message"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	UserID               int64     `json:"userId,string"`
	Message              string    `json:"message"`
	OTPSent              bool      `json:"otpSent"`
	RequiresVerification bool      `json:"requiresVerification,omitempty"`
	User                 *UserData `json:"user,omitempty"`
}

type CompleteLoginRequest struct {
	UserID  int64  `json:"userId,string"`
	OTPCode string `json:"otpCode"`
}

type CompleteLoginResponse struct {
	User    UserData `json:"user"`
	Token   string   `json:"token"`
	Message string   `json:"message"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}

type ResendLoginOTPRequest struct {
	Email string `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProfileResponse struct {
	User UserData `json:"user"`
}
