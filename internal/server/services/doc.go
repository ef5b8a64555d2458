// Package services contains server-side business logic: folder management
// and the bulk file operations (move, copy, delete) whose per-item failures
// are reported as data rather than as errors.
package services
