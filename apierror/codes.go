package apierror

import "net/http"

// ErrorCode is a machine-readable error identifier. The set is closed and
// append-only: codes are never renamed or removed.
type ErrorCode string

// Transport and fallback codes.
const (
	// CodeNetworkError indicates the request never reached the server or no
	// response came back (DNS, refused connection, dropped link).
	CodeNetworkError ErrorCode = "NETWORK_ERROR"
	// CodeTimeoutError indicates the transport aborted the request.
	CodeTimeoutError ErrorCode = "TIMEOUT_ERROR"
	// CodeUnknownError is the fallback for anything that cannot be classified.
	CodeUnknownError ErrorCode = "UNKNOWN_ERROR"
)

// Authentication/Authorization codes.
const (
	// CodeAuthTokenExpired indicates the session token has expired.
	CodeAuthTokenExpired ErrorCode = "AUTH_TOKEN_EXPIRED"
	// CodeAuthTokenInvalid indicates the session token is malformed or unknown.
	CodeAuthTokenInvalid ErrorCode = "AUTH_TOKEN_INVALID"
	// CodeAuthTokenRevoked indicates the session token was revoked server-side.
	CodeAuthTokenRevoked ErrorCode = "AUTH_TOKEN_REVOKED"
	// CodeAuthUnauthorized indicates missing or rejected credentials.
	CodeAuthUnauthorized ErrorCode = "AUTH_UNAUTHORIZED"
	// CodeAuthForbidden indicates the caller lacks permission for the action.
	CodeAuthForbidden ErrorCode = "AUTH_FORBIDDEN"
)

// Validation codes.
const (
	// CodeValidationError indicates the request payload failed validation.
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	// CodeValidationRequiredField indicates a required field is missing.
	CodeValidationRequiredField ErrorCode = "VALIDATION_REQUIRED_FIELD"
	// CodeValidationInvalidFormat indicates a field has an invalid format.
	CodeValidationInvalidFormat ErrorCode = "VALIDATION_INVALID_FORMAT"
)

// Resource codes.
const (
	// CodeResourceNotFound indicates the requested resource does not exist.
	CodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	// CodeResourceConflict indicates the action conflicts with stored data.
	CodeResourceConflict ErrorCode = "RESOURCE_CONFLICT"
)

// Server codes.
const (
	// CodeServerError indicates an internal server failure.
	CodeServerError ErrorCode = "SERVER_ERROR"
	// CodeServiceUnavailable indicates the server or a gateway is down.
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// CodeRateLimitExceeded indicates the client is being throttled.
const CodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

type family uint8

const (
	familyNone family = iota
	familyNetwork
	familyAuth
	familyValidation
	familyResource
	familyServer
	familyRateLimit
)

// taxonomy is the closed code set. Insertion order is the order Codes reports.
var taxonomy = []struct {
	code   ErrorCode
	family family
}{
	{CodeNetworkError, familyNetwork},
	{CodeTimeoutError, familyNetwork},
	{CodeUnknownError, familyNone},
	{CodeAuthTokenExpired, familyAuth},
	{CodeAuthTokenInvalid, familyAuth},
	{CodeAuthTokenRevoked, familyAuth},
	{CodeAuthUnauthorized, familyAuth},
	{CodeAuthForbidden, familyAuth},
	{CodeValidationError, familyValidation},
	{CodeValidationRequiredField, familyValidation},
	{CodeValidationInvalidFormat, familyValidation},
	{CodeResourceNotFound, familyResource},
	{CodeResourceConflict, familyResource},
	{CodeServerError, familyServer},
	{CodeServiceUnavailable, familyServer},
	{CodeRateLimitExceeded, familyRateLimit},
}

var families = func() map[ErrorCode]family {
	m := make(map[ErrorCode]family, len(taxonomy))
	for _, t := range taxonomy {
		m[t.code] = t.family
	}
	return m
}()

// ParseCode reports whether s names a code in the taxonomy. Matching is exact.
func ParseCode(s string) (ErrorCode, bool) {
	code := ErrorCode(s)
	if _, ok := families[code]; !ok {
		return "", false
	}
	return code, true
}

// Codes returns every code in the taxonomy in declaration order.
func Codes() []ErrorCode {
	out := make([]ErrorCode, len(taxonomy))
	for i, t := range taxonomy {
		out[i] = t.code
	}
	return out
}

// String returns the wire form of the code.
func (c ErrorCode) String() string { return string(c) }

var familyNames = [...]string{
	familyNone:       "",
	familyNetwork:    "network",
	familyAuth:       "auth",
	familyValidation: "validation",
	familyResource:   "resource",
	familyServer:     "server",
	familyRateLimit:  "rate_limit",
}

// Family names the group a code belongs to, e.g. "auth". It is empty for
// UNKNOWN_ERROR and for codes outside the taxonomy.
func (c ErrorCode) Family() string { return familyNames[families[c]] }

// IsNetwork reports whether c is one of the no-response transport codes.
func (c ErrorCode) IsNetwork() bool { return families[c] == familyNetwork }

// IsAuth reports whether c belongs to the auth family.
func (c ErrorCode) IsAuth() bool { return families[c] == familyAuth }

// IsValidation reports whether c belongs to the validation family.
func (c ErrorCode) IsValidation() bool { return families[c] == familyValidation }

// IsServer reports whether c belongs to the server family.
func (c ErrorCode) IsServer() bool { return families[c] == familyServer }

// IsTokenInvalidation reports whether c means the session token can no
// longer be used. Permission failures are not token invalidation.
func (c ErrorCode) IsTokenInvalidation() bool {
	switch c {
	case CodeAuthTokenExpired, CodeAuthTokenRevoked, CodeAuthTokenInvalid:
		return true
	}
	return false
}

// CodeForStatus returns the code implied by an HTTP status when the server
// did not send one of its own.
func CodeForStatus(status int) ErrorCode {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return CodeValidationError
	case status == http.StatusUnauthorized:
		return CodeAuthUnauthorized
	case status == http.StatusForbidden:
		return CodeAuthForbidden
	case status == http.StatusNotFound:
		return CodeResourceNotFound
	case status == http.StatusConflict:
		return CodeResourceConflict
	case status == http.StatusTooManyRequests:
		return CodeRateLimitExceeded
	case status == http.StatusBadGateway,
		status == http.StatusServiceUnavailable,
		status == http.StatusGatewayTimeout:
		return CodeServiceUnavailable
	case status >= http.StatusInternalServerError:
		return CodeServerError
	default:
		return CodeUnknownError
	}
}
