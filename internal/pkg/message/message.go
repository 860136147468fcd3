package message

const (
	InvalidUser     = "Invalid email/password."
	InvalidInput    = "Invalid input."
	InvalidToken    = "Invalid or expired token."
	InvalidID       = "Invalid id."
	InvalidQuery    = "Invalid query parameter."
	NotFound        = "Resource not found."
	Forbidden       = "You are not allowed to do that."
	TooManyRequests = "Too many requests. Please slow down."
	UnexpectedError = "An unexpected error occurred."
)

// FmtErrStatusCode formats status code mismatches in handler tests.
const FmtErrStatusCode = "rec.Code = %d, want: %d"

