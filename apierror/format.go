package apierror

// FormatForUser returns the message to show the user, with the support
// reference appended when the server supplied one.
func FormatForUser(p *ParsedError) string {
	if p == nil {
		return MessageUnknown
	}
	msg := coalesce(p.Message, MessageUnknown)
	if p.RequestID != "" {
		return msg + " (Ref: " + p.RequestID + ")"
	}
	return msg
}
