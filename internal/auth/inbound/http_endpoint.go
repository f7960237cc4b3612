package inbound

import (
	"github.com/shandysiswandi/gauth/internal/auth/usecase"
	"github.com/shandysiswandi/gauth/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for registration, verification and the
// two-step login workflow.
type HTTPEndpoint struct {
	uc uc
}

// Register creates an unverified account and sends a verification code.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		User:    toUserData(resp.User),
		Message: "Registration successful. Please check your email for verification code.",
	}, nil
}

// VerifyEmail confirms a registration code and signs the user in.
func (h *HTTPEndpoint) VerifyEmail(r *router.Request) (any, error) {
	var req VerifyEmailRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyEmail(r.Context(), usecase.VerifyEmailInput{
		Email:   req.Email,
		OTPCode: req.OTPCode,
	})
	if err != nil {
		return nil, err
	}

	return VerifyEmailResponse{
		User:    toUserData(resp.User),
		Token:   resp.Token,
		Message: "Email verified successfully. You are now logged in.",
	}, nil
}

// Login checks credentials and sends a one-time code; no token is issued yet.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		return nil, err
	}

	out := LoginResponse{
		UserID:               resp.User.ID,
		Message:              "Login code sent to your email. Please verify to complete login.",
		OTPSent:              resp.OTPSent,
		RequiresVerification: resp.RequiresVerification,
	}

	// The profile is withheld until the account is verified.
	if resp.RequiresVerification {
		out.Message = "Email not verified. Verification code sent to your email."
	} else {
		user := toUserData(resp.User)
		out.User = &user
	}

	return out, nil
}

// CompleteLogin confirms a login code and issues a token.
func (h *HTTPEndpoint) CompleteLogin(r *router.Request) (any, error) {
	var req CompleteLoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CompleteLogin(r.Context(), usecase.CompleteLoginInput{
		UserID:  req.UserID,
		OTPCode: req.OTPCode,
	})
	if err != nil {
		return nil, err
	}

	return CompleteLoginResponse{
		User:    toUserData(resp.User),
		Token:   resp.Token,
		Message: "Login successful",
	}, nil
}

// ResendVerification sends a fresh registration code.
func (h *HTTPEndpoint) ResendVerification(r *router.Request) (any, error) {
	var req ResendVerificationRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ResendVerification(r.Context(), usecase.ResendVerificationInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return MessageResponse{Message: "Verification code sent to your email"}, nil
}

// ResendLoginOTP sends a fresh login code.
func (h *HTTPEndpoint) ResendLoginOTP(r *router.Request) (any, error) {
	var req ResendLoginOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ResendLoginOTP(r.Context(), usecase.ResendLoginOTPInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return MessageResponse{Message: "Login code sent to your email"}, nil
}

// Profile returns the authenticated user.
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context(), usecase.ProfileInput{})
	if err != nil {
		return nil, err
	}

	return ProfileResponse{User: toUserData(resp.User)}, nil
}
