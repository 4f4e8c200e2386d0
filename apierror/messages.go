package apierror

// Generic fallback messages.
const (
	MessageUnknown = "An unexpected error occurred. Please try again."
	MessageNetwork = "Unable to connect to the server. Please check your internet connection."
	MessageTimeout = "The request timed out. Please try again."
)

const messageUnavailable = "The server is temporarily unavailable. Please try again later."

var statusMessages = map[int]string{
	400: "Invalid request. Please check your input.",
	401: "Your session has expired. Please login again.",
	403: "You don't have permission to perform this action.",
	404: "The requested resource was not found.",
	409: "This action conflicts with existing data.",
	422: "The request could not be processed.",
	429: "Too many requests. Please try again later.",
	500: "An internal server error occurred.",
	502: messageUnavailable,
	503: messageUnavailable,
	504: messageUnavailable,
}

// DefaultMessage returns the generic English message for an HTTP status,
// or MessageUnknown for statuses outside the table. It never returns "".
func DefaultMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return MessageUnknown
}

// StatusMessages returns a copy of the status message table.
func StatusMessages() map[int]string {
	out := make(map[int]string, len(statusMessages))
	for k, v := range statusMessages {
		out[k] = v
	}
	return out
}
