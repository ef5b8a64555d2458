package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/dmitrijs2005/docfolders/internal/client/selection"
	"github.com/dmitrijs2005/docfolders/internal/client/transfer"
)

const (
	msgNothingToDelete = "Para excluir, selecione pelo menos um arquivo."
	msgFolderDeleted   = "Pasta excluída."
	msgFolderRenamed   = "Pasta renomeada."
	msgFileRenamed     = "Arquivo renomeado."
	msgFolderCreated   = "Pasta criada."
)

// expect returns the current action when the open modal is kind.
func (s *Surface) expect(kind ModalKind) (Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != kind {
		return "", ErrNoModal
	}
	return s.action, nil
}

// ConfirmDelete deletes the file, the selected files of the folder, or the
// folder itself, depending on which menu entry opened the modal.
func (s *Surface) ConfirmDelete(ctx context.Context) error {
	action, err := s.expect(ModalDelete)
	if err != nil {
		return err
	}

	if action == ActionDeleteFolder {
		if err := s.deps.API.DeleteFolder(ctx, s.id); err != nil {
			s.deps.fail(err)
			return fmt.Errorf("delete folder: %w", err)
		}
		if err := s.deps.Store.RemoveFolder(s.id); err != nil {
			s.logger.Warn(ctx, "folder deleted remotely but kept locally", "error", err)
		}
		if s.deps.Notifier != nil {
			s.deps.Notifier.Success(msgFolderDeleted)
		}
		s.Close()
		return nil
	}

	var ids []string
	switch s.target {
	case targetFile:
		ids = []string{s.id}
	case targetFolder:
		folder, ok := s.deps.Store.Folder(s.id)
		if !ok {
			return ErrTargetNotFound
		}
		ids = selection.SelectedIDs(folder)
	}
	if len(ids) == 0 {
		err := &transfer.ValidationError{Message: msgNothingToDelete}
		s.deps.fail(err)
		return err
	}

	res, err := s.deps.API.DeleteFiles(ctx, ids)
	if err != nil {
		s.deps.fail(err)
		return fmt.Errorf("delete files: %w", err)
	}
	s.deps.Store.RemoveFiles(res.SucceededIDs())
	s.deps.notify(*res)
	s.logger.Info(ctx, "files deleted", "succeeded", len(res.Items), "failed", len(res.Failed))
	s.Close()
	return nil
}

// ConfirmRename renames the file or folder of this surface.
func (s *Surface) ConfirmRename(ctx context.Context, name string) error {
	if _, err := s.expect(ModalRename); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	switch s.target {
	case targetFile:
		f, err := s.deps.API.RenameFile(ctx, s.id, name)
		if err != nil {
			s.deps.fail(err)
			return fmt.Errorf("rename file: %w", err)
		}
		s.deps.Store.RenameFile(s.id, f.Name)
		if s.deps.Notifier != nil {
			s.deps.Notifier.Success(msgFileRenamed)
		}
	case targetFolder:
		f, err := s.deps.API.RenameFolder(ctx, s.id, name)
		if err != nil {
			s.deps.fail(err)
			return fmt.Errorf("rename folder: %w", err)
		}
		s.deps.Store.RenameFolder(s.id, f.Name)
		if s.deps.Notifier != nil {
			s.deps.Notifier.Success(msgFolderRenamed)
		}
	default:
		return ErrUnsupported
	}
	s.Close()
	return nil
}

// ConfirmNewFolder creates a top-level folder.
func (s *Surface) ConfirmNewFolder(ctx context.Context, name string) (*models.Folder, error) {
	if _, err := s.expect(ModalNewFolder); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	f, err := s.deps.API.CreateFolder(ctx, name)
	if err != nil {
		s.deps.fail(err)
		return nil, fmt.Errorf("create folder: %w", err)
	}
	s.deps.Store.AddFolder(*f)
	if s.deps.Notifier != nil {
		s.deps.Notifier.Success(msgFolderCreated)
	}
	s.Close()
	return f, nil
}

// Properties describes the item shown by the properties modal.
type Properties struct {
	ID         string
	Name       string
	IsFolder   bool
	MediaType  string
	Status     models.Status
	Size       int64
	FolderName string
	FileCount  int
	Selected   int
}

func (s *Surface) Properties() (Properties, error) {
	if _, err := s.expect(ModalProperties); err != nil {
		return Properties{}, err
	}
	switch s.target {
	case targetFile:
		folder, file, ok := s.deps.Store.FolderOf(s.id)
		if !ok {
			return Properties{}, ErrTargetNotFound
		}
		return Properties{
			ID:         file.ID,
			Name:       file.Name,
			MediaType:  file.MediaType,
			Status:     file.Status,
			Size:       file.Size,
			FolderName: folder.Name,
		}, nil
	case targetFolder:
		folder, ok := s.deps.Store.Folder(s.id)
		if !ok {
			return Properties{}, ErrTargetNotFound
		}
		p := Properties{
			ID:        folder.ID,
			Name:      folder.Name,
			IsFolder:  true,
			FileCount: len(folder.Files),
			Selected:  len(selection.SelectedIDs(folder)),
		}
		for _, f := range folder.Files {
			p.Size += f.Size
		}
		return p, nil
	default:
		return Properties{}, ErrUnsupported
	}
}
