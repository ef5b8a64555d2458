// Package actions owns the per-item menus of the documents screen and the
// modal each menu opens.
//
// A Surface is bound to one context: a single file, a folder, or the screen
// root (which only offers "new folder"). At most one modal is open per
// Surface; opening another closes the first, and Close never touches data.
// Copy and move modals are driven by a transfer.Orchestrator whose callbacks
// are wired to the screen Store; the other modals are confirmed directly on
// the Surface.
package actions
