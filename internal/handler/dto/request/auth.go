package request

type SendVerificationCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=registration password_reset"`
}

type VerifyCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	Type        string `json:"type" binding:"required,oneof=registration password_reset"`
}

type ResetPasswordRequest struct {
	PhoneNumber       string `json:"phoneNumber" binding:"required"`
	NewPassword       string `json:"newPassword" binding:"required,min=8"`
	VerificationToken string `json:"verificationToken" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterDeviceTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
