package actions

import (
	"sync"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/dmitrijs2005/docfolders/internal/client/selection"
	"github.com/dmitrijs2005/docfolders/internal/client/transfer"
	"github.com/dmitrijs2005/docfolders/internal/logging"
)

type target int

const (
	targetFile target = iota
	targetFolder
	targetRoot
)

// Surface is the menu plus modal state of one file, one folder or the
// screen root.
type Surface struct {
	deps   Deps
	target target
	id     string
	logger logging.Logger

	mu      sync.Mutex
	action  Action
	current ModalKind
	orch    *transfer.Orchestrator
	dest    string
}

func NewFileSurface(deps Deps, fileID string) *Surface {
	return newSurface(deps, targetFile, fileID)
}

func NewFolderSurface(deps Deps, folderID string) *Surface {
	return newSurface(deps, targetFolder, folderID)
}

// NewRootSurface returns the screen-level surface, which only creates folders.
func NewRootSurface(deps Deps) *Surface {
	return newSurface(deps, targetRoot, "")
}

func newSurface(deps Deps, t target, id string) *Surface {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Surface{
		deps:   deps,
		target: t,
		id:     id,
		logger: logger.With("module", "actions", "target", id),
	}
}

// Items returns the menu for the current state of the store. It is computed
// on every call so enablement follows the live selection.
func (s *Surface) Items() []MenuItem {
	switch s.target {
	case targetFile:
		_, file, ok := s.deps.Store.FolderOf(s.id)
		if !ok {
			return nil
		}
		return fileMenu(file)
	case targetFolder:
		folder, ok := s.deps.Store.Folder(s.id)
		if !ok {
			return nil
		}
		return folderMenu(folder)
	default:
		return []MenuItem{{Action: ActionNewFolder, Label: "Nova pasta"}}
	}
}

func fileMenu(file models.File) []MenuItem {
	notReady := !file.Ready()
	return []MenuItem{
		{Action: ActionCopy, Label: "Copiar", Disabled: notReady},
		{Action: ActionMove, Label: "Mover", Disabled: notReady},
		{Action: ActionRename, Label: "Renomear"},
		{Action: ActionProperties, Label: "Propriedades"},
		{Action: ActionDelete, Label: "Excluir"},
	}
}

func folderMenu(folder models.Folder) []MenuItem {
	none := !selection.HasSelection(folder)
	return []MenuItem{
		{Action: ActionCopy, Label: "Copiar selecionados", Disabled: none},
		{Action: ActionMove, Label: "Mover selecionados", Disabled: none},
		{Action: ActionDelete, Label: "Excluir selecionados", Disabled: none},
		{Action: ActionRename, Label: "Renomear pasta", Disabled: folder.General},
		{Action: ActionProperties, Label: "Propriedades"},
		{Action: ActionDeleteFolder, Label: "Excluir pasta", Disabled: folder.General},
	}
}

// Open shows the modal of action, closing whatever this surface had open.
func (s *Surface) Open(action Action) error {
	item, ok := s.item(action)
	if !ok {
		return ErrUnsupported
	}
	if item.Disabled {
		return ErrDisabled
	}

	var orch *transfer.Orchestrator
	if action == ActionCopy || action == ActionMove {
		var err error
		if orch, err = s.newOrchestrator(action); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	s.action = action
	s.current = action.modal()
	s.orch = orch
	return nil
}

// Close returns the surface to ModalNone. A transfer still in flight is
// dismissed, so its late reply changes nothing.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Surface) closeLocked() {
	if s.orch != nil {
		s.orch.Dismiss()
	}
	s.orch = nil
	s.action = ""
	s.current = ModalNone
	s.dest = ""
}

func (s *Surface) Current() ModalKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Surface) CurrentAction() Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.action
}

// Transfer returns the orchestrator of an open copy or move modal.
func (s *Surface) Transfer() (*transfer.Orchestrator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orch, s.orch != nil
}

func (s *Surface) item(action Action) (MenuItem, bool) {
	for _, it := range s.Items() {
		if it.Action == action {
			return it, true
		}
	}
	return MenuItem{}, false
}

// source reads the current file or folder from the store.
func (s *Surface) source() (models.Source, error) {
	switch s.target {
	case targetFile:
		_, file, ok := s.deps.Store.FolderOf(s.id)
		if !ok {
			return models.Source{}, ErrTargetNotFound
		}
		return models.FileSource(file), nil
	case targetFolder:
		folder, ok := s.deps.Store.Folder(s.id)
		if !ok {
			return models.Source{}, ErrTargetNotFound
		}
		return models.FolderSource(folder), nil
	default:
		return models.Source{}, ErrUnsupported
	}
}
