// Package transfer runs a move or copy of one file, or of the selected files
// of a folder, against the remote API and reconciles the source folder with
// the reply.
//
// # Lifecycle
//
// An Orchestrator lives as long as one copy/move modal. The caller picks a
// destination with SetDestination and calls Confirm. Confirm goes through
//
//	Idle -> Validating -> (Idle | InFlight) -> Idle
//
// and never leaves the orchestrator anywhere but Idle when it returns.
//
// # Errors
//
//   - *ValidationError: nothing selected, no destination. No network call.
//   - ErrInProgress: a previous Confirm is still waiting for the backend.
//   - transport errors from the API, wrapped. Local collections are untouched
//     and the modal stays open; LastError keeps the failure for display.
//   - ErrStaleResponse: the modal was dismissed while the request was in
//     flight, so the reply was dropped.
//
// Per-file failures are not errors: they travel inside the TransferResult and
// the caller decides how to show them.
package transfer
