package apperrors

var (
	UserNotFound = &Error{
		Kind:    KindNotFound,
		Message: "User not found.",
		Fields:  map[string]string{"email": "No account exists for this email address."},
	}
	InvalidCredentials = &Error{
		Kind:    KindUnauthorized,
		Message: "Invalid email or password.",
		Fields:  map[string]string{"error": "Invalid email or password."},
	}
	AccountInactive = &Error{
		Kind:    KindUnauthorized,
		Message: "Account is deactivated.",
		Fields:  map[string]string{"error": "This account has been deactivated."},
	}
	AuthenticationRequired = &Error{
		Kind:    KindUnauthorized,
		Message: "Authentication required.",
		Fields:  map[string]string{"error": "Missing or invalid authorization token."},
	}
	InvalidVerificationCode = &Error{
		Kind:    KindInvalidCode,
		Message: "Invalid or expired verification code.",
		Fields:  map[string]string{"code": "Invalid or expired verification code."},
	}
	PasswordMismatch = &Error{
		Kind:    KindMismatch,
		Message: "Passwords do not match.",
		Fields:  map[string]string{"confirm_password": "New password and confirmation do not match."},
	}
	SomethingWentWrong = &Error{
		Kind:    KindInternal,
		Message: "Something went wrong, Please try again",
	}
)
