// Package secrets provides the client for the vault secrets service.
//
// The package deliberately exposes each surface in two equivalent shapes,
// one options-object and one builder, so API reviews can compare them on
// working code. Both shapes feed the same composition path and produce
// identical requests.
//
// Construction, options shape:
//
//	client, err := secrets.NewClient(endpoint, cred, &secrets.ClientOptions{
//		Retry: pipeline.RetryOptions{MaxAttempts: 5},
//	})
//
// Construction, builder shape:
//
//	client, err := secrets.NewClientBuilder(endpoint, cred).
//		WithRetry(pipeline.RetryOptions{MaxAttempts: 5}).
//		Build()
//
// Operation, options shape:
//
//	resp, err := client.SetSecret(ctx, "secret-name", "secret-value", &secrets.SetSecretOptions{
//		Properties: &secrets.SecretProperties{Enabled: false},
//	})
//
// Operation, builder shape:
//
//	resp, err := client.NewSetSecret("secret-name", "secret-value").
//		WithProperties(secrets.SecretProperties{Enabled: false}).
//		Send(ctx)
//
// Responses are returned raw; decode with Response.JSON:
//
//	var secret secrets.Secret
//	if err := resp.JSON(&secret); err != nil { ... }
package secrets
