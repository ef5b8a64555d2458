package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/docfolders/internal/client/actions"
	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/dmitrijs2005/docfolders/internal/client/transfer"
)

// Transfer runs a copy or move modal: it lists the destination options,
// reads a choice and confirms. Validation and transport errors keep the
// modal open and the user is asked again; an empty answer cancels.
func (a *App) Transfer(ctx context.Context, kind models.TransferKind, target, id string) error {
	if target != targetFile && target != targetFolder {
		return a.report(errBadTarget)
	}
	s, err := a.surface(target, id)
	if err != nil {
		return a.report(err)
	}
	action := actions.ActionMove
	if kind == models.TransferCopy {
		action = actions.ActionCopy
	}
	if err := s.Open(action); err != nil {
		if errors.Is(err, actions.ErrDisabled) && target == targetFolder {
			fmt.Fprintln(a.out, transfer.NoSelectionMessage(kind))
			return err
		}
		return a.report(err)
	}
	defer s.Close()

	for {
		opts, err := s.DestinationOptions()
		if err != nil {
			return a.report(err)
		}
		if len(opts) == 0 {
			fmt.Fprintln(a.out, "Não há outra pasta disponível.")
			return nil
		}
		fmt.Fprintf(a.out, "Para onde deseja %s?\n", kind.Verb())
		for i, f := range opts {
			fmt.Fprintf(a.out, "  %d) %s (%s)\n", i+1, f.Name, f.ID)
		}

		choice, err := GetSimpleText(a.in, "Número ou id da pasta (vazio para cancelar)", a.out)
		if err != nil {
			return err
		}
		if choice == "" {
			fmt.Fprintln(a.out, "Cancelado.")
			return nil
		}

		_, err = s.ConfirmTransfer(ctx, resolveChoice(choice, opts))
		if err == nil {
			a.persist(ctx)
			return nil
		}
		if errors.Is(err, transfer.ErrStaleResponse) || errors.Is(err, actions.ErrTargetNotFound) {
			return err
		}
		// notifier already printed the problem; ask again
	}
}

// resolveChoice maps a 1-based menu number to a folder id. Anything else is
// taken as an id.
func resolveChoice(choice string, opts []models.Folder) string {
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(opts) {
		return opts[n-1].ID
	}
	return choice
}
