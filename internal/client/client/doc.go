// Package client talks to the headless CMS that owns the clinic's content.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): Login,
//     FetchCollection, AssetURL and Close.
//  2. An HTTP implementation (see HTTPClient) speaking the CMS REST API:
//     POST /auth/login, GET /items/<collection>, and asset URLs under
//     /assets/<id>. Every request carries an X-Request-ID and
//     Cache-Control: no-store.
//  3. Durable-store bootstrap (InitDatabase, RunMigrations) for the SQL tier
//     of the credential cache, applying embedded goose migrations for SQLite
//     or Postgres.
//
// # Error Handling
//
// Non-2xx responses surface as *AuthError or *FetchError, which unwrap to
// ErrAuthenticationFailed and ErrFetchFailed respectively. Transport failures
// wrap ErrUnavailable. Match with errors.Is / errors.As.
//
// No call is retried.
package client
