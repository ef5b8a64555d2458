// Package client talks to the docfolders backend.
//
// Client is the transport-agnostic contract used by the services, the
// transfer orchestrator and the CLI; HTTPClient implements it over the
// backend's JSON API. Transport and status failures are reported with the
// sentinel errors in errors.go so callers can match them with errors.Is:
// ErrUnavailable means the server could not be reached (or answered 5xx),
// which the CLI treats as "offline".
package client
