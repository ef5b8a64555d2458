package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/docfolders/internal/client/client"
	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/dmitrijs2005/docfolders/internal/client/transfer"
)

// consoleNotifier prints modal outcomes to the terminal.
type consoleNotifier struct {
	w     io.Writer
	names func(fileID string) string
}

func (n *consoleNotifier) Success(message string) {
	fmt.Fprintln(n.w, "✔", message)
}

func (n *consoleNotifier) Failures(message string, failed []models.ItemError) {
	if message != "" {
		fmt.Fprintln(n.w, "!", message)
	}
	fmt.Fprintln(n.w, "Os seguintes arquivos não foram processados:")
	for _, f := range failed {
		fmt.Fprintf(n.w, "  - %s: %s\n", n.names(f.ID), f.Error)
	}
}

func (n *consoleNotifier) Error(err error) {
	fmt.Fprintln(n.w, "✘", describe(err))
}

// describe turns an error into the text shown to the user.
func describe(err error) string {
	var ve *transfer.ValidationError
	var apiErr *client.APIError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, transfer.ErrInProgress):
		return "Aguarde a operação em andamento."
	case errors.Is(err, client.ErrUnavailable):
		return "Servidor indisponível. Tente novamente."
	case errors.Is(err, client.ErrUnauthorized):
		return "Acesso negado. Verifique o token."
	case errors.Is(err, client.ErrNotFound):
		return "Item não encontrado no servidor."
	case errors.As(err, &apiErr):
		return apiErr.Error()
	default:
		return err.Error()
	}
}
