package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrSuspiciousClient ErrCode = "SUSPICIOUS_CLIENT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrAccountRateLimited ErrCode = "ACCOUNT_RATE_LIMITED"
	ErrAuthRateLimited    ErrCode = "AUTH_RATE_LIMITED"
	ErrRateLimited        ErrCode = "RATE_LIMITED"

	// ─── Validation / Security ─────────────────────────────────────────
	ErrValidation        ErrCode = "VALIDATION_ERROR"
	ErrInvalidID         ErrCode = "INVALID_ID"
	ErrSecurityViolation ErrCode = "SECURITY_VIOLATION"
	ErrFileRequired      ErrCode = "FILE_REQUIRED"
	ErrFileTooLarge      ErrCode = "FILE_TOO_LARGE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Invalid credentials"
	case ErrTokenRequired:
		return "Authentication token required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrSuspiciousClient:
		return "Access denied."
	case ErrAccountRateLimited:
		return "Too many login attempts for this account. Please try again in 30 minutes."
	case ErrAuthRateLimited:
		return "Too many login attempts. Please try again in 15 minutes."
	case ErrRateLimited:
		return "Too many requests. Please try again later."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrSecurityViolation:
		return "Invalid request detected."
	case ErrFileRequired:
		return "A file upload is required."
	case ErrFileTooLarge:
		return "File size exceeds the limit."
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
