package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Session tokens ────────────────────────────────────────────────
	// Malformed, expired, and unknown tokens all surface as INVALID_TOKEN;
	// the precise reason is logged but never reaches the client.
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrInvalidToken  ErrCode = "INVALID_TOKEN"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrAccessDenied      ErrCode = "ACCESS_DENIED"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrTeacherAccessOnly ErrCode = "TEACHER_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrStateConflict ErrCode = "STATE_CONFLICT"

	// ─── Submissions ───────────────────────────────────────────────────
	ErrSubmissionWindowClosed ErrCode = "SUBMISSION_WINDOW_CLOSED"
	ErrMaxAttemptsReached     ErrCode = "MAX_ATTEMPTS_REACHED"
	ErrEmptySubmission        ErrCode = "EMPTY_SUBMISSION"
	ErrGradeOutOfRange        ErrCode = "GRADE_OUT_OF_RANGE"

	// ─── Uploads ───────────────────────────────────────────────────────
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"
	ErrInvalidTicket   ErrCode = "INVALID_UPLOAD_TICKET"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Session tokens ────────────────────────────────────────────────
	case ErrTokenRequired:
		return "A session token is required."
	case ErrInvalidToken:
		return "The session token is not valid."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrAccessDenied:
		return "You do not have access to this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrTeacherAccessOnly:
		return "This resource is restricted to teachers."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is not valid."
	case ErrInvalidPayload:
		return "The request payload is not valid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The resource was not found."
	case ErrStateConflict:
		return "The action is not allowed in the current state."

	// ─── Submissions ───────────────────────────────────────────────────
	case ErrSubmissionWindowClosed:
		return "The submission window for this assignment has closed."
	case ErrMaxAttemptsReached:
		return "The maximum number of attempts has been reached."
	case ErrEmptySubmission:
		return "A submission needs content or at least one attached file."
	case ErrGradeOutOfRange:
		return "The grade is outside the allowed range for this assignment."

	// ─── Uploads ───────────────────────────────────────────────────────
	case ErrUnsupportedFile:
		return "This file type is not supported."
	case ErrFileTooLarge:
		return "The file exceeds the size limit."
	case ErrInvalidTicket:
		return "The upload ticket is not valid or has already been used."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
