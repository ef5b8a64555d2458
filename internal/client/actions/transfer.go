package actions

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/dmitrijs2005/docfolders/internal/client/transfer"
)

func (s *Surface) newOrchestrator(action Action) (*transfer.Orchestrator, error) {
	src, err := s.source()
	if err != nil {
		return nil, err
	}
	kind := models.TransferCopy
	if action == ActionMove {
		kind = models.TransferMove
	}
	return transfer.New(transfer.Options{
		Kind:       kind,
		Source:     src,
		Candidates: s.deps.Store.Snapshot(),
		API:        s.deps.API,
		Logger:     s.logger,
		Callbacks: transfer.Callbacks{
			OnCopyDone: s.onCopyDone,
			OnMoveDone: s.onMoveDone,
			OnClose:    s.Close,
		},
	})
}

func (s *Surface) onCopyDone(res models.TransferResult, _ models.Folder) {
	s.addToDestination(res.Items)
	s.deps.notify(res)
}

// onMoveDone reconciles against the live tree rather than the source
// snapshot, so changes made to the source folder while the request was in
// flight survive.
func (s *Surface) onMoveDone(res models.TransferResult, _ models.Source, _ models.Folder) {
	s.deps.Store.RemoveFiles(res.SucceededIDs())
	s.addToDestination(res.Items)
	s.deps.notify(res)
}

// addToDestination files the returned items under the folder the backend
// reports, falling back to the destination chosen in the modal.
func (s *Surface) addToDestination(items []models.File) {
	s.mu.Lock()
	dest := s.dest
	s.mu.Unlock()

	byFolder := make(map[string][]models.File)
	order := make([]string, 0, 1)
	for _, it := range items {
		id := it.FolderID
		if id == "" {
			id = dest
		}
		if _, seen := byFolder[id]; !seen {
			order = append(order, id)
		}
		byFolder[id] = append(byFolder[id], it)
	}
	for _, id := range order {
		s.deps.Store.AddFiles(id, byFolder[id])
	}
}

// DestinationOptions lists the folders the open copy/move modal offers.
func (s *Surface) DestinationOptions() ([]models.Folder, error) {
	orch, ok := s.Transfer()
	if !ok {
		return nil, ErrNoModal
	}
	return orch.DestinationOptions(), nil
}

// ConfirmTransfer submits the open copy/move modal to destinationID. The
// source is re-read from the store first so the latest selection is used.
// On success the modal closes itself; on any error it stays open.
func (s *Surface) ConfirmTransfer(ctx context.Context, destinationID string) (*transfer.Outcome, error) {
	s.mu.Lock()
	orch := s.orch
	s.mu.Unlock()
	if orch == nil {
		return nil, ErrNoModal
	}

	src, err := s.source()
	if err != nil {
		return nil, err
	}
	if err := orch.SetSource(src, s.deps.Store.Snapshot()); err != nil {
		return nil, err
	}
	orch.SetDestination(destinationID)

	s.mu.Lock()
	s.dest = destinationID
	s.mu.Unlock()

	out, err := orch.Confirm(ctx)
	if err != nil {
		if errors.Is(err, transfer.ErrStaleResponse) {
			return nil, err
		}
		s.deps.fail(err)
		return nil, err
	}
	return out, nil
}
