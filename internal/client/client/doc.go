// Package client is the remote gateway of the OpenMarket client.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface) covering auth, listings,
//     users, ratings and image upload.
//  2. A concrete REST implementation over net/http (see HTTPClient) that
//     attaches the bearer token supplied by a TokenSource, tags every request
//     with an X-Request-ID and normalizes the several response shapes the
//     backend uses for lists, uploads and rating checks.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// A non-2xx response is returned as *APIError. Transport failures wrap
// ErrUnavailable. APIError matches ErrUnauthorized (401) and ErrNotFound
// (404) with errors.Is. There is no retry.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use.
package client
