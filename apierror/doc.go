// Package apierror turns failures raised by the HTTP layer into a single,
// stable, typed representation.
//
// Every failure is first inspected into one of three shapes (see Failure):
// an arbitrary exception, a transport failure that never received a
// response, or a transport failure carrying a server response. Classify then
// folds that shape into a *ParsedError with exactly one ErrorCode, a
// non-empty message, the HTTP status (0 when no response was received), the
// server's field errors and an optional correlation id.
//
// The policies consume only the classified error:
//
//	perr := apierror.Classify(err)
//	if apierror.ShouldLogout(perr) {
//	    session.End()
//	}
//	if apierror.IsRetryable(perr) {
//	    queue.Retry(op)
//	}
//	toast.Show(apierror.FormatForUser(perr))
//	form.SetErrors(apierror.FieldErrorMap(perr))
//
// The package performs no I/O and keeps no mutable state; all functions are
// safe for concurrent use.
package apierror
