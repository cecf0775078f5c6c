// Package observability provides OpenTelemetry tracing and metrics
// bootstrap for applications using vaultkit, plus the span helpers and
// metric instruments the pipeline policies record on.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-app"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	cfg := observability.DefaultMeterConfig("my-app")
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-app"))
//
// The SDK itself never initializes providers: with no provider installed,
// the pipeline's tracing policy is a no-op.
package observability
