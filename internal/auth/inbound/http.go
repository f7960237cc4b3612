package inbound

import (
	"context"

	"github.com/shandysiswandi/gauth/internal/auth/usecase"
	"github.com/shandysiswandi/gauth/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	VerifyEmail(ctx context.Context, in usecase.VerifyEmailInput) (*usecase.VerifyEmailOutput, error)

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	CompleteLogin(ctx context.Context, in usecase.CompleteLoginInput) (*usecase.CompleteLoginOutput, error)

	ResendVerification(ctx context.Context, in usecase.ResendVerificationInput) error
	ResendLoginOTP(ctx context.Context, in usecase.ResendLoginOTPInput) error

	Profile(ctx context.Context, in usecase.ProfileInput) (*usecase.ProfileOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Registration & email verification
	r.POST("/auth/register", end.Register)
	r.POST("/auth/verify-email", end.VerifyEmail)
	r.POST("/auth/resend-verification", end.ResendVerification)

	// Two-step login
	r.POST("/auth/login", end.Login)
	r.POST("/auth/complete-login", end.CompleteLogin)
	r.POST("/auth/resend-login-otp", end.ResendLoginOTP)

	// Current user (need authenticated)
	r.GET("/auth/user", end.Profile)
}
