package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/docfolders/internal/common"
	"github.com/dmitrijs2005/docfolders/internal/server/models"
	"github.com/dmitrijs2005/docfolders/internal/server/services"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

const (
	msgUnauthorized        = "Não autorizado."
	msgBadRequest          = "Requisição inválida."
	msgNotFound            = "Não encontrado."
	msgDestinationNotFound = "Pasta de destino não encontrada."
	msgGeneralFolder       = "A pasta de arquivos gerais não pode ser alterada."
	msgNameTaken           = "Já existe um item com este nome."
	msgInternal            = "Erro interno do servidor."
	msgUnavailable         = "Serviço indisponível."
)

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, models.ErrorResponse{Error: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return false
	}
	return true
}

// writeServiceError maps service errors to a status and a user-facing
// message. Unknown errors are logged and reported as 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, msgBadRequest)
	case errors.Is(err, services.ErrDestinationNotFound):
		writeError(w, http.StatusNotFound, msgDestinationNotFound)
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, common.ErrGeneralFolder):
		writeError(w, http.StatusConflict, msgGeneralFolder)
	case errors.Is(err, common.ErrAlreadyExists):
		writeError(w, http.StatusConflict, msgNameTaken)
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
