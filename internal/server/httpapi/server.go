// Package httpapi exposes the folder and file services over HTTP/JSON.
//
// Routes:
//
//	GET    /health
//	GET    /api/pastas                 list folders with their files
//	POST   /api/pastas                 {"nome"}
//	PATCH  /api/pastas/{id}            {"nome"}
//	DELETE /api/pastas/{id}
//	POST   /api/arquivos/mover         {"ids", "pasta_destino_id"}
//	POST   /api/arquivos/copiar        {"ids", "pasta_destino_id"}
//	POST   /api/arquivos/excluir       {"ids"}
//	PATCH  /api/arquivos/{id}          {"nome"}
//
// Everything under /api requires a bearer token. Bulk file calls answer 200,
// 207 or 409 with a TransferResult body; other failures carry {"erro"}.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/docfolders/internal/logging"
	"github.com/dmitrijs2005/docfolders/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// FileOps is implemented by services.FileService.
type FileOps interface {
	Move(ctx context.Context, userID string, ids []string, destID string) (*models.TransferResult, error)
	Copy(ctx context.Context, userID string, ids []string, destID string) (*models.TransferResult, error)
	Delete(ctx context.Context, userID string, ids []string) (*models.TransferResult, error)
	Rename(ctx context.Context, userID, id, name string) (*models.File, error)
}

// FolderOps is implemented by services.FolderService.
type FolderOps interface {
	List(ctx context.Context, userID string) ([]models.Folder, error)
	Create(ctx context.Context, userID, name string) (*models.Folder, error)
	Rename(ctx context.Context, userID, id, name string) (*models.Folder, error)
	Delete(ctx context.Context, userID, id string) error
}

// Options configures a Server. Health may be nil.
type Options struct {
	Files       FileOps
	Folders     FolderOps
	JWTSecret   []byte
	CORSOrigins []string
	Health      func(ctx context.Context) error
	Logger      logging.Logger
}

// Server holds the handlers' dependencies.
type Server struct {
	files   FileOps
	folders FolderOps
	secret  []byte
	origins []string
	health  func(ctx context.Context) error
	logger  logging.Logger
}

func NewServer(o Options) *Server {
	return &Server{
		files:   o.Files,
		folders: o.Folders,
		secret:  o.JWTSecret,
		origins: o.CORSOrigins,
		health:  o.Health,
		logger:  o.Logger.With("module", "httpapi"),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/pastas", func(r chi.Router) {
			r.Get("/", s.handleListFolders)
			r.Post("/", s.handleCreateFolder)
			r.Patch("/{id}", s.handleRenameFolder)
			r.Delete("/{id}", s.handleDeleteFolder)
		})

		r.Route("/arquivos", func(r chi.Router) {
			r.Post("/mover", s.handleMoveFiles)
			r.Post("/copiar", s.handleCopyFiles)
			r.Post("/excluir", s.handleDeleteFiles)
			r.Patch("/{id}", s.handleRenameFile)
		})
	})

	return r
}
