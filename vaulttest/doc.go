// Package vaulttest provides an in-process fake of the vault secrets
// service for integration tests and runnable demos.
//
// The fake stores secrets in memory, enforces the api-version query
// parameter and bearer authentication, and mirrors the service's JSON
// error envelope. It accepts the set-secret call under both the current
// GET-with-body convention and the anticipated PUT correction.
//
//	srv := vaulttest.NewServer(vaulttest.Options{Token: "test-token"})
//	defer srv.Close()
//
//	client, err := secrets.NewClient(srv.URL(), credential.NewStaticTokenCredential("test-token"), nil)
package vaulttest
