package handler

const (
	errInternalServer     = "Internal server error"
	errDuplicateEmail     = "Email already registered"
	errInvalidCredentials = "Invalid credentials"
	errOTPNotFound        = "OTP not found"
	errOTPExpired         = "OTP expired"
	errOTPInvalid         = "Invalid OTP"
	errEmailNotRegistered = "Email not registered"
	errAlreadyVerified    = "Email already verified"
)
