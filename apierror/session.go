package apierror

// ShouldLogout reports whether p means the current session token is no
// longer usable. A plain permission failure does not end the session.
func ShouldLogout(p *ParsedError) bool {
	return p != nil && p.Code.IsTokenInvalidation()
}
