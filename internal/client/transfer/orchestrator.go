package transfer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/dmitrijs2005/docfolders/internal/client/selection"
	"github.com/dmitrijs2005/docfolders/internal/logging"
)

// API is the subset of the remote client a transfer needs.
type API interface {
	MoveFiles(ctx context.Context, fileIDs []string, destinationID string) (*models.TransferResult, error)
	CopyFiles(ctx context.Context, fileIDs []string, destinationID string) (*models.TransferResult, error)
}

// Callbacks receive the outcome of a Confirm that reached the backend.
// Each fires at most once per Confirm, after the orchestrator is back to Idle.
type Callbacks struct {
	// OnCopyDone gets the result and the source folder, which a copy never changes.
	OnCopyDone func(result models.TransferResult, updatedSource models.Folder)
	// OnMoveDone gets the result, the source as it was when confirmed, and the
	// source folder with the moved files removed.
	OnMoveDone func(result models.TransferResult, original models.Source, updatedSource models.Folder)
	// OnClose asks the owner to close the modal.
	OnClose func()
}

type Options struct {
	Kind       models.TransferKind
	Source     models.Source
	Candidates []models.Folder
	API        API
	Callbacks  Callbacks
	Logger     logging.Logger
}

// Phase is the orchestrator's position in its state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseInFlight
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseInFlight:
		return "in_flight"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Outcome is what Confirm returns when the backend answered.
type Outcome struct {
	Request       models.TransferRequest
	Result        models.TransferResult
	UpdatedSource models.Folder
}

// Orchestrator drives one copy/move modal. It is safe for concurrent use; the
// network call runs without holding the lock.
type Orchestrator struct {
	kind   models.TransferKind
	api    API
	cb     Callbacks
	logger logging.Logger

	mu          sync.Mutex
	source      models.Source
	candidates  []models.Folder
	destination string
	phase       Phase
	inProgress  bool
	generation  uint64
	lastErr     error
}

func New(o Options) (*Orchestrator, error) {
	if !o.Kind.Valid() {
		return nil, fmt.Errorf("unknown transfer kind %q", o.Kind)
	}
	if err := o.Source.Validate(); err != nil {
		return nil, err
	}
	if o.API == nil {
		return nil, errors.New("transfer api is required")
	}
	logger := o.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		kind:       o.Kind,
		api:        o.API,
		cb:         o.Callbacks,
		logger:     logger.With("module", "transfer", "kind", string(o.Kind)),
		source:     o.Source,
		candidates: models.CloneFolders(o.Candidates),
	}, nil
}

func (o *Orchestrator) Kind() models.TransferKind {
	return o.kind
}

// SetSource replaces the source and candidate snapshots, e.g. after the user
// changed the selection while the modal was open.
func (o *Orchestrator) SetSource(src models.Source, candidates []models.Folder) error {
	if err := src.Validate(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.source = src
	o.candidates = models.CloneFolders(candidates)
	return nil
}

// DestinationOptions lists the folders offered by the destination picker:
// every candidate except the folder the source lives in.
func (o *Orchestrator) DestinationOptions() []models.Folder {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.destinationOptionsLocked()
}

func (o *Orchestrator) destinationOptionsLocked() []models.Folder {
	srcID := o.source.FolderID()
	out := make([]models.Folder, 0, len(o.candidates))
	for _, f := range o.candidates {
		if f.ID == srcID {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (o *Orchestrator) SetDestination(folderID string) {
	o.mu.Lock()
	o.destination = folderID
	o.mu.Unlock()
}

func (o *Orchestrator) Destination() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.destination
}

// InProgress reports whether a Confirm is waiting for the backend. The
// confirm affordance must be disabled while it is true.
func (o *Orchestrator) InProgress() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inProgress
}

func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// LastError returns the transport error of the latest Confirm, if any.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Dismiss invalidates any request in flight. Its reply, when it arrives, is
// dropped without touching callbacks.
func (o *Orchestrator) Dismiss() {
	o.mu.Lock()
	o.generation++
	o.mu.Unlock()
}

// Confirm validates the selection, performs the single remote call and
// reconciles the source folder. See the package documentation for the
// error contract.
func (o *Orchestrator) Confirm(ctx context.Context) (*Outcome, error) {
	o.mu.Lock()
	if o.inProgress {
		o.mu.Unlock()
		return nil, ErrInProgress
	}
	o.phase = PhaseValidating
	req, err := o.buildRequestLocked()
	if err != nil {
		o.phase = PhaseIdle
		o.mu.Unlock()
		return nil, err
	}
	o.phase = PhaseInFlight
	o.inProgress = true
	gen := o.generation
	o.mu.Unlock()

	o.logger.Debug(ctx, "transfer requested", "files", len(req.FileIDs), "destination", req.DestinationID, "bulk", req.Bulk)
	result, err := o.call(ctx, req)

	o.mu.Lock()
	o.inProgress = false
	o.phase = PhaseIdle
	o.destination = ""
	if err != nil {
		o.lastErr = err
		o.mu.Unlock()
		o.logger.Error(ctx, "transfer failed", "error", err, "files", len(req.FileIDs))
		return nil, fmt.Errorf("%s files: %w", o.kind, err)
	}
	if gen != o.generation {
		o.mu.Unlock()
		o.logger.Warn(ctx, "dropping late transfer response", "moved", len(result.Items), "failed", len(result.Failed))
		return nil, ErrStaleResponse
	}
	o.lastErr = nil
	original := o.source
	updated := o.reconcileLocked(*result)
	o.mu.Unlock()

	o.logger.Info(ctx, "transfer finished", "succeeded", len(result.Items), "failed", len(result.Failed))

	switch o.kind {
	case models.TransferCopy:
		if o.cb.OnCopyDone != nil {
			o.cb.OnCopyDone(*result, updated)
		}
	case models.TransferMove:
		if o.cb.OnMoveDone != nil {
			o.cb.OnMoveDone(*result, original, updated)
		}
	}
	if o.cb.OnClose != nil {
		o.cb.OnClose()
	}

	return &Outcome{Request: req, Result: *result, UpdatedSource: updated}, nil
}

func (o *Orchestrator) buildRequestLocked() (models.TransferRequest, error) {
	if o.destination == "" {
		return models.TransferRequest{}, &ValidationError{Message: MsgNoDestination}
	}
	if o.destination == o.source.FolderID() {
		return models.TransferRequest{}, &ValidationError{Message: MsgSameFolder}
	}
	if len(o.candidates) > 0 && models.FindFolder(o.destinationOptionsLocked(), o.destination) < 0 {
		return models.TransferRequest{}, &ValidationError{Message: MsgUnknownFolder}
	}

	req := models.TransferRequest{Kind: o.kind, DestinationID: o.destination, Bulk: o.source.IsFolder()}
	if o.source.IsFolder() {
		req.FileIDs = selection.SelectedIDs(*o.source.Folder)
		if len(req.FileIDs) == 0 {
			return models.TransferRequest{}, &ValidationError{Message: NoSelectionMessage(o.kind)}
		}
	} else {
		req.FileIDs = []string{o.source.File.ID}
	}
	return req, nil
}

func (o *Orchestrator) call(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error) {
	var (
		res *models.TransferResult
		err error
	)
	switch req.Kind {
	case models.TransferMove:
		res, err = o.api.MoveFiles(ctx, req.FileIDs, req.DestinationID)
	default:
		res, err = o.api.CopyFiles(ctx, req.FileIDs, req.DestinationID)
	}
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrEmptyResponse
	}
	return res, nil
}

// reconcileLocked computes the source folder snapshot after the reply.
func (o *Orchestrator) reconcileLocked(result models.TransferResult) models.Folder {
	if o.source.IsFolder() {
		folder := o.source.Folder.Clone()
		if o.kind == models.TransferMove {
			folder = folder.WithoutFiles(result.SucceededIDs())
		}
		return folder
	}
	return o.owningFolderLocked()
}

// owningFolderLocked returns the folder that holds the single-file source,
// or a bare folder with that id when it is not among the candidates.
func (o *Orchestrator) owningFolderLocked() models.Folder {
	id := o.source.File.FolderID
	if i := models.FindFolder(o.candidates, id); i >= 0 {
		return o.candidates[i].Clone()
	}
	return models.Folder{ID: id}
}
