package apierror

import "testing"

func TestParseCode_TaxonomyMembers(t *testing.T) {
	for _, code := range Codes() {
		got, ok := ParseCode(string(code))
		if !ok {
			t.Errorf("expected %s to be in the taxonomy", code)
		}
		if got != code {
			t.Errorf("expected %s, got %s", code, got)
		}
	}
}

func TestParseCode_RejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "auth_token_expired", "NOT_A_CODE", " NETWORK_ERROR"} {
		if _, ok := ParseCode(s); ok {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestCodes_ReturnsCopy(t *testing.T) {
	codes := Codes()
	codes[0] = "MUTATED"
	if Codes()[0] != CodeNetworkError {
		t.Error("expected Codes to return an independent slice")
	}
}

func TestErrorCode_Families(t *testing.T) {
	tests := []struct {
		code                                     ErrorCode
		network, auth, validation, server, token bool
	}{
		{CodeNetworkError, true, false, false, false, false},
		{CodeTimeoutError, true, false, false, false, false},
		{CodeUnknownError, false, false, false, false, false},
		{CodeAuthTokenExpired, false, true, false, false, true},
		{CodeAuthTokenInvalid, false, true, false, false, true},
		{CodeAuthTokenRevoked, false, true, false, false, true},
		{CodeAuthUnauthorized, false, true, false, false, false},
		{CodeAuthForbidden, false, true, false, false, false},
		{CodeValidationError, false, false, true, false, false},
		{CodeValidationRequiredField, false, false, true, false, false},
		{CodeValidationInvalidFormat, false, false, true, false, false},
		{CodeResourceNotFound, false, false, false, false, false},
		{CodeServerError, false, false, false, true, false},
		{CodeServiceUnavailable, false, false, false, true, false},
		{CodeRateLimitExceeded, false, false, false, false, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			if tc.code.IsNetwork() != tc.network {
				t.Errorf("IsNetwork: expected %v", tc.network)
			}
			if tc.code.IsAuth() != tc.auth {
				t.Errorf("IsAuth: expected %v", tc.auth)
			}
			if tc.code.IsValidation() != tc.validation {
				t.Errorf("IsValidation: expected %v", tc.validation)
			}
			if tc.code.IsServer() != tc.server {
				t.Errorf("IsServer: expected %v", tc.server)
			}
			if tc.code.IsTokenInvalidation() != tc.token {
				t.Errorf("IsTokenInvalidation: expected %v", tc.token)
			}
		})
	}
}

func TestErrorCode_Family(t *testing.T) {
	tests := map[ErrorCode]string{
		CodeTimeoutError:       "network",
		CodeAuthTokenRevoked:   "auth",
		CodeValidationError:    "validation",
		CodeResourceConflict:   "resource",
		CodeServiceUnavailable: "server",
		CodeRateLimitExceeded:  "rate_limit",
		CodeUnknownError:       "",
		ErrorCode("BOGUS"):     "",
	}
	for code, want := range tests {
		if got := code.Family(); got != want {
			t.Errorf("%s: expected family %q, got %q", code, want, got)
		}
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{400, CodeValidationError},
		{401, CodeAuthUnauthorized},
		{403, CodeAuthForbidden},
		{404, CodeResourceNotFound},
		{409, CodeResourceConflict},
		{418, CodeUnknownError},
		{422, CodeValidationError},
		{429, CodeRateLimitExceeded},
		{500, CodeServerError},
		{501, CodeServerError},
		{502, CodeServiceUnavailable},
		{503, CodeServiceUnavailable},
		{504, CodeServiceUnavailable},
		{0, CodeUnknownError},
	}
	for _, tc := range tests {
		if got := CodeForStatus(tc.status); got != tc.want {
			t.Errorf("CodeForStatus(%d): expected %s, got %s", tc.status, tc.want, got)
		}
	}
}

func TestDefaultMessage_Table(t *testing.T) {
	tests := map[int]string{
		400: "Invalid request. Please check your input.",
		401: "Your session has expired. Please login again.",
		403: "You don't have permission to perform this action.",
		404: "The requested resource was not found.",
		409: "This action conflicts with existing data.",
		422: "The request could not be processed.",
		429: "Too many requests. Please try again later.",
		500: "An internal server error occurred.",
		502: "The server is temporarily unavailable. Please try again later.",
		503: "The server is temporarily unavailable. Please try again later.",
		504: "The server is temporarily unavailable. Please try again later.",
		418: MessageUnknown,
		0:   MessageUnknown,
	}
	for status, want := range tests {
		if got := DefaultMessage(status); got != want {
			t.Errorf("DefaultMessage(%d): expected %q, got %q", status, want, got)
		}
	}
}

func TestStatusMessages_ReturnsCopy(t *testing.T) {
	m := StatusMessages()
	m[400] = "changed"
	if DefaultMessage(400) == "changed" {
		t.Error("expected StatusMessages to return a copy")
	}
}
