package main

import (
	"encoding/json"
	"io"

	"github.com/kbukum/inspectkit/apierror"
)

// report is what classify and probe print for a failure.
type report struct {
	Classification *apierror.ParsedError `json:"classification"`
	Retryable      bool                  `json:"retryable"`
	Logout         bool                  `json:"logout"`
	UserMessage    string                `json:"user_message"`
	Fields         map[string]string     `json:"fields"`
}

func newReport(p *apierror.ParsedError) report {
	return report{
		Classification: p,
		Retryable:      apierror.IsRetryable(p),
		Logout:         apierror.ShouldLogout(p),
		UserMessage:    apierror.FormatForUser(p),
		Fields:         apierror.FieldErrorMap(p),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
