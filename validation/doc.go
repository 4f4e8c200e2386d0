// Package validation checks configuration and fixture input, reporting
// failures as apierror.FieldError values so that client-side and
// server-side field errors share one shape.
//
// Struct validation uses go-playground/validator tags:
//
//	type APIConfig struct {
//	    BaseURL string `json:"base_url" validate:"required,url"`
//	}
//	if err := validation.Validate(cfg); err != nil { ... }
//
// The Validator builder covers checks that tags cannot express.
package validation
