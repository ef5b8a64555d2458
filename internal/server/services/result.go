package services

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/docfolders/internal/server/models"
)

// Per-item failure messages shown to the user.
const (
	MsgFileNotFound    = "Arquivo não encontrado."
	MsgAlreadyInFolder = "O arquivo já está nesta pasta."
	MsgNameTaken       = "Já existe um arquivo com este nome na pasta de destino."
	MsgFileNotReady    = "O arquivo ainda não está pronto."
	MsgCopyFailed      = "Não foi possível copiar o arquivo."
)

type operation string

const (
	opMove   operation = "movido(s)"
	opCopy   operation = "copiado(s)"
	opDelete operation = "excluído(s)"
)

// outcome accumulates the per-item results of one bulk call.
type outcome struct {
	op     operation
	items  []models.File
	failed []models.ItemError
}

func (o *outcome) ok(f models.File) {
	o.items = append(o.items, f)
}

func (o *outcome) fail(id, msg string) {
	o.failed = append(o.failed, models.ItemError{ID: id, Error: msg})
}

// result builds the reply: 200 when every item succeeded, 409 when none
// did and 207 otherwise.
func (o *outcome) result() *models.TransferResult {
	status := http.StatusOK
	switch {
	case len(o.items) == 0 && len(o.failed) > 0:
		status = http.StatusConflict
	case len(o.failed) > 0:
		status = http.StatusMultiStatus
	}

	items := o.items
	if items == nil {
		items = []models.File{}
	}
	failed := o.failed
	if failed == nil {
		failed = []models.ItemError{}
	}
	return &models.TransferResult{
		Message: fmt.Sprintf("%d arquivo(s) %s.", len(o.items), o.op),
		Items:   items,
		Failed:  failed,
		Status:  status,
	}
}

// uniqueIDs drops repeated and empty ids, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
