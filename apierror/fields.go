package apierror

// FieldErrorMap maps each field to its error message. When the server sends
// several messages for one field only the last one is kept.
func FieldErrorMap(p *ParsedError) map[string]string {
	out := make(map[string]string)
	if p == nil {
		return out
	}
	for _, fe := range p.FieldErrors {
		out[fe.Field] = fe.Message
	}
	return out
}
