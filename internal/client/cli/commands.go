package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docfolders/internal/client/actions"
	"github.com/dmitrijs2005/docfolders/internal/client/client"
)

const (
	targetFile     = "file"
	targetFolder   = "folder"
	targetSelected = "selected"
)

var errBadTarget = errors.New("target must be file or folder")

func (a *App) List(ctx context.Context) error {
	folders := a.tree.Snapshot()
	if len(folders) == 0 {
		fmt.Fprintln(a.out, "Nenhuma pasta.")
		return nil
	}
	filtering := a.tree.Query() != ""
	for _, f := range folders {
		if !f.Show {
			continue
		}
		marker := "+"
		if f.Open || filtering {
			marker = "-"
		}
		general := ""
		if f.General {
			general = " [geral]"
		}
		fmt.Fprintf(a.out, "%s %s (%s)%s %d arquivo(s)\n", marker, f.Name, f.ID, general, len(f.Files))
		if marker == "+" {
			continue
		}
		for _, file := range f.Files {
			if !file.Show {
				continue
			}
			check := "[ ]"
			if file.Selected {
				check = "[x]"
			}
			fmt.Fprintf(a.out, "    %s %s (%s) %s %s\n", check, file.Name, file.ID, file.Status, humanSize(file.Size))
		}
	}
	return nil
}

func (a *App) Open(ctx context.Context, folderID string) error {
	if _, ok := a.tree.Folder(folderID); !ok {
		fmt.Fprintln(a.out, "Pasta não encontrada:", folderID)
		return actions.ErrTargetNotFound
	}
	a.tree.ToggleOpen(folderID)
	return a.List(ctx)
}

func (a *App) Select(ctx context.Context, folderID, fileID string, checked bool) error {
	folder, ok := a.tree.Folder(folderID)
	if !ok {
		fmt.Fprintln(a.out, "Pasta não encontrada:", folderID)
		return actions.ErrTargetNotFound
	}
	i := folder.FileIndex(fileID)
	if i < 0 {
		fmt.Fprintln(a.out, "Arquivo não encontrado:", fileID)
		return actions.ErrTargetNotFound
	}
	if checked && !folder.Files[i].Ready() {
		fmt.Fprintln(a.out, "O arquivo ainda não está pronto.")
		return nil
	}
	a.tree.Select(folderID, fileID, checked)
	return nil
}

func (a *App) SelectAll(ctx context.Context, folderID string) error {
	if _, ok := a.tree.Folder(folderID); !ok {
		fmt.Fprintln(a.out, "Pasta não encontrada:", folderID)
		return actions.ErrTargetNotFound
	}
	a.tree.SelectFolder(folderID)
	return nil
}

func (a *App) Filter(ctx context.Context, query string) error {
	a.tree.Filter(query)
	return a.List(ctx)
}

func (a *App) Reload(ctx context.Context) error {
	res, err := a.folders.Load(ctx)
	if err != nil {
		if errors.Is(err, client.ErrLocalDataNotAvailable) {
			a.setMode(ModeOffline)
		}
		fmt.Fprintln(a.out, "✘", describe(err))
		return err
	}
	if res.Offline {
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Servidor indisponível, exibindo a última cópia local.")
	} else {
		a.setMode(ModeOnline)
	}
	a.tree.Replace(res.Folders)
	return nil
}

func (a *App) Info(ctx context.Context, target, id string) error {
	s, err := a.surface(target, id)
	if err != nil {
		return a.report(err)
	}
	if err := s.Open(actions.ActionProperties); err != nil {
		return a.report(err)
	}
	defer s.Close()

	p, err := s.Properties()
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Nome:    %s\nID:      %s\n", p.Name, p.ID)
	if p.IsFolder {
		fmt.Fprintf(a.out, "Arquivos: %d (%d selecionado(s))\nTamanho: %s\n", p.FileCount, p.Selected, humanSize(p.Size))
		return nil
	}
	fmt.Fprintf(a.out, "Pasta:   %s\nTipo:    %s\nStatus:  %s\nTamanho: %s\n", p.FolderName, p.MediaType, p.Status, humanSize(p.Size))
	return nil
}

// surface builds the action surface for a "file" or "folder" target.
func (a *App) surface(target, id string) (*actions.Surface, error) {
	switch target {
	case targetFile:
		return actions.NewFileSurface(a.deps, id), nil
	case targetFolder, targetSelected:
		return actions.NewFolderSurface(a.deps, id), nil
	default:
		return nil, errBadTarget
	}
}

// report prints a surface error that the notifier did not already show.
func (a *App) report(err error) error {
	switch {
	case errors.Is(err, actions.ErrDisabled):
		fmt.Fprintln(a.out, "Ação indisponível para este item.")
	case errors.Is(err, actions.ErrUnsupported), errors.Is(err, actions.ErrTargetNotFound):
		fmt.Fprintln(a.out, "Item não encontrado.")
	case errors.Is(err, errBadTarget):
		fmt.Fprintln(a.out, "Use file ou folder.")
	case errors.Is(err, actions.ErrEmptyName):
		fmt.Fprintln(a.out, "O nome não pode ficar vazio.")
	}
	return err
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

var _ execIface = (*App)(nil)
