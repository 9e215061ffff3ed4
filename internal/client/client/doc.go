// Package client contains the client-side building blocks that talk to the
// outside world: the chat backend and the local store.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic backend contract (see the Client interface):
//     Login, VerifyLogin, SendMessage, GetChats, GetChat, CreateChat, DeleteChat.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) speaking the
//     backend's fixed REST contract and mapping failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are exposed as sentinel errors that callers match with errors.Is:
// ErrUnavailable (network), ErrUnauthorized (credentials/token) and
// ErrBackend (non-success status, carried by *StatusError).
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation; each request is additionally
// bounded by the client's timeout.
package client
