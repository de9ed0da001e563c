package apperr

import "fmt"

// 统一校验文案：面向用户、可操作、跨接口一致。
const (
	MsgEmailRequired = "Email is required"
	MsgEmailInvalid  = "Please provide a valid email address"

	MsgUsernameRequired = "Username is required"
	MsgUsernameInvalid  = "Username must be 3-50 characters using letters, numbers, and underscores only"

	MsgPasswordRequired     = "Password is required"
	MsgPasswordRequirements = "Password must contain at least 8 characters"
)

// 统一建议文案。
const (
	SuggestTryAgain       = "Please try again"
	SuggestContactSupport = "Contact support if the problem persists"
	SuggestCheckDocs      = "Check API documentation for field requirements"

	SuggestCheckCredentials  = "Please check your email and password"
	SuggestCheckPassword     = "Check your password and try again"
	SuggestVerifyEmailFormat = "Ensure email includes @ symbol and valid domain"
	SuggestPasswordStrength  = "Password must meet security requirements"
	SuggestPhoneFormat       = "Use correct phone number format"
)

func RequiredMessage(field string) string {
	return fmt.Sprintf("'%s' is required", field)
}

func MinLengthMessage(field string, minLength int) string {
	return fmt.Sprintf("'%s' must be at least %d characters", field, minLength)
}

func MaxLengthMessage(field string, maxLength int) string {
	return fmt.Sprintf("'%s' cannot exceed %d characters", field, maxLength)
}

func InvalidChoiceMessage(field string, choices []string) string {
	out := ""
	for i, c := range choices {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return fmt.Sprintf("'%s' must be one of: %s", field, out)
}
