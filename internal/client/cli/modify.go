package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docfolders/internal/client/actions"
)

// Delete removes a file, a folder, or the selected files of a folder.
func (a *App) Delete(ctx context.Context, target, id string) error {
	s, err := a.surface(target, id)
	if err != nil {
		return a.report(err)
	}
	action := actions.ActionDelete
	prompt := "Excluir o arquivo?"
	switch target {
	case targetFolder:
		action = actions.ActionDeleteFolder
		prompt = "Excluir a pasta e todos os seus arquivos?"
	case targetSelected:
		prompt = "Excluir os arquivos selecionados?"
	}
	if err := s.Open(action); err != nil {
		return a.report(err)
	}
	defer s.Close()

	ok, err := Confirm(a.in, prompt, a.out)
	if err != nil || !ok {
		return err
	}
	if err := s.ConfirmDelete(ctx); err != nil {
		return err
	}
	a.persist(ctx)
	return nil
}

func (a *App) Rename(ctx context.Context, target, id string) error {
	if target == targetSelected {
		return a.report(errBadTarget)
	}
	s, err := a.surface(target, id)
	if err != nil {
		return a.report(err)
	}
	if err := s.Open(actions.ActionRename); err != nil {
		return a.report(err)
	}
	defer s.Close()

	name, err := GetSimpleText(a.in, "Novo nome", a.out)
	if err != nil {
		return err
	}
	if err := s.ConfirmRename(ctx, name); err != nil {
		return a.report(err)
	}
	a.persist(ctx)
	return nil
}

func (a *App) Mkdir(ctx context.Context, name string) error {
	s := actions.NewRootSurface(a.deps)
	if err := s.Open(actions.ActionNewFolder); err != nil {
		return a.report(err)
	}
	defer s.Close()

	if name == "" {
		var err error
		if name, err = GetSimpleText(a.in, "Nome da nova pasta", a.out); err != nil {
			return err
		}
	}
	f, err := s.ConfirmNewFolder(ctx, name)
	if err != nil {
		return a.report(err)
	}
	a.persist(ctx)
	fmt.Fprintf(a.out, "Pasta %s criada com id %s\n", f.Name, f.ID)
	return nil
}
