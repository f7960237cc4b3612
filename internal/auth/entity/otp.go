package entity

import "time"

type OTPPurpose int16

const (
	// OTPPurposeUnknown is mean purpose is not known / not set.
	OTPPurposeUnknown OTPPurpose = 0

	// OTPPurposeRegistration gates email verification after sign up.
	OTPPurposeRegistration OTPPurpose = 1

	// OTPPurposeLogin gates the second step of a login.
	OTPPurposeLogin OTPPurpose = 2
)

func (p OTPPurpose) String() string {
	switch p {
	case OTPPurposeRegistration:
		return "RegistrationVerification"
	case OTPPurposeLogin:
		return "LoginConfirmation"
	default:
		return "Unknown"
	}
}

type OneTimeCode struct {
	ID        int64
	UserID    int64
	Code      string
	Purpose   OTPPurpose
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
