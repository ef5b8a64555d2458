// Package services contains client-side use cases that combine the remote
// API with the local cache.
package services
