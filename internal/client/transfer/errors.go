package transfer

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
)

var (
	ErrInProgress    = errors.New("transfer already in progress")
	ErrStaleResponse = errors.New("transfer response arrived after the modal was dismissed")
	ErrEmptyResponse = errors.New("empty transfer response")
)

const (
	MsgNoDestination   = "Selecione uma pasta de destino."
	MsgSameFolder      = "Selecione uma pasta diferente da pasta de origem."
	MsgUnknownFolder   = "A pasta de destino não está disponível."
	msgNoSelectionTmpl = "Para %s, selecione pelo menos um arquivo."
)

// NoSelectionMessage is shown when a bulk transfer is confirmed with nothing
// selected.
func NoSelectionMessage(kind models.TransferKind) string {
	return fmt.Sprintf(msgNoSelectionTmpl, kind.Verb())
}

// ValidationError is a user-facing problem detected before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
