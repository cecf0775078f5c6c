// Package pipeline implements the HTTP request pipeline shared by all
// vaultkit service clients.
//
// A pipeline is an ordered chain of policies terminated by a transport.
// Policies run once per call (telemetry, request ID, tracing, metrics) or
// once per attempt (authentication, logging), with the retry policy sitting
// between the two groups:
//
//	per-call policies -> retry -> per-retry policies -> transport
//
// Service clients construct a pipeline once and share it across calls:
//
//	pl := pipeline.New("vaultkit-secrets", "0.1.0", &pipeline.Options{}, nil, perRetry)
//	resp, err := pl.Do(ctx, req)
//
// Errors surfaced by the pipeline are classified (*Error) so callers can
// branch on the failure kind without string matching:
//
//	if pipeline.IsRateLimit(err) { ... }
package pipeline
