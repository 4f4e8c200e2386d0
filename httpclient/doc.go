// Package httpclient is the HTTP transport for the inspection API. Every
// failure it returns is a *apierror.ParsedError: connection failures,
// timeouts and 4xx/5xx responses are classified once, logged, counted,
// and checked for session expiry before reaching the caller.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Auth:    httpclient.BearerAuth(token),
//	    Retry:   httpclient.DefaultRetryConfig(),
//	    OnSessionExpired: func(p *apierror.ParsedError) { session.End() },
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/assets/42"})
//	var p *apierror.ParsedError
//	if errors.As(err, &p) {
//	    fieldErrs := apierror.FieldErrorMap(p)
//	}
package httpclient
