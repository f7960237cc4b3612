package event

const OTPIssuedDestination string = "auth_otp_issued"
const OTPIssuedDestinationConsumerNotification string = "auth_otp_issued_notification"

const (
	OTPPurposeRegistration int16 = 1
	OTPPurposeLogin        int16 = 2
)

type OTPIssuedMessage struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Code     string `json:"code"`
	Purpose  int16  `json:"purpose"`
}
