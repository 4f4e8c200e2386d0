// Package observability wires OpenTelemetry metrics for classified API
// failures.
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	em, err := observability.NewErrorMetrics(observability.Meter("inspectkit"))
//	em.Record(ctx, "POST /inspections", apierror.Classify(err))
package observability
