package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/docfolders/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, msgUnavailable)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.folders.List(r.Context(), userID(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var body models.NameRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	folder, err := s.folders.Create(r.Context(), userID(r.Context()), body.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

func (s *Server) handleRenameFolder(w http.ResponseWriter, r *http.Request) {
	var body models.NameRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	folder, err := s.folders.Rename(r.Context(), userID(r.Context()), chi.URLParam(r, "id"), body.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := s.folders.Delete(r.Context(), userID(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bulkFunc func(ctx context.Context, userID string, body models.FileIDsRequest) (*models.TransferResult, error)

// bulk decodes the ids body, runs op and answers with the result's own
// status.
func (s *Server) bulk(op bulkFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.FileIDsRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := op(r.Context(), userID(r.Context()), body)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, res.Status, res)
	}
}

func (s *Server) handleMoveFiles(w http.ResponseWriter, r *http.Request) {
	s.bulk(func(ctx context.Context, uid string, b models.FileIDsRequest) (*models.TransferResult, error) {
		return s.files.Move(ctx, uid, b.IDs, b.DestinationID)
	})(w, r)
}

func (s *Server) handleCopyFiles(w http.ResponseWriter, r *http.Request) {
	s.bulk(func(ctx context.Context, uid string, b models.FileIDsRequest) (*models.TransferResult, error) {
		return s.files.Copy(ctx, uid, b.IDs, b.DestinationID)
	})(w, r)
}

func (s *Server) handleDeleteFiles(w http.ResponseWriter, r *http.Request) {
	s.bulk(func(ctx context.Context, uid string, b models.FileIDsRequest) (*models.TransferResult, error) {
		return s.files.Delete(ctx, uid, b.IDs)
	})(w, r)
}

func (s *Server) handleRenameFile(w http.ResponseWriter, r *http.Request) {
	var body models.NameRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	file, err := s.files.Rename(r.Context(), userID(r.Context()), chi.URLParam(r, "id"), body.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, file)
}
