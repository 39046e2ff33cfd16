// Package client is the CLI's view of the credkit daemon.
//
// # Overview
//
// The Client interface is the transport-agnostic contract the CLI codes
// against. GRPCClient implements it over a gRPC connection using the JSON
// codec from package api; it injects the access token obtained at login
// into every call through a unary interceptor and maps gRPC status codes to
// the sentinel errors below.
//
// # Error Handling
//
// Callers match with errors.Is: ErrUnavailable, ErrUnauthorized,
// ErrAlreadyExists, ErrInvalidArgument, ErrExhausted, and
// common.ErrTokenExpired for access tokens past their lifetime.
package client
