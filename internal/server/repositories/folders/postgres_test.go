package folders

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/docfolders/internal/common"
	"github.com/dmitrijs2005/docfolders/internal/server/models"
)

var columns = []string{"id", "user_id", "name", "parent_id", "general", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

func met(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListByUser(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)SELECT id, user_id, name, parent_id, general, created_at FROM folders\s+WHERE user_id=\$1 ORDER BY general DESC`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("g", "u1", "Arquivos gerais", nil, true, now).
			AddRow("f1", "u1", "Contratos", "g", false, now))

	got, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 folders, got %d", len(got))
	}
	if !got[0].General || got[0].ParentID != "" {
		t.Fatalf("unexpected general folder: %+v", got[0])
	}
	if got[1].ParentID != "g" || got[1].Name != "Contratos" {
		t.Fatalf("unexpected folder: %+v", got[1])
	}
	met(t, mock)
}

func TestListByUser_QueryError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT .* FROM folders`).WillReturnError(errors.New("db down"))

	if _, err := repo.ListByUser(context.Background(), "u1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	mock.ExpectQuery(`FROM folders\s+WHERE user_id=\$1 AND id=\$2`).
		WithArgs("u1", "nope").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.Get(context.Background(), "u1", "nope")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	met(t, mock)
}

func TestGetGeneral(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	mock.ExpectQuery(`FROM folders\s+WHERE user_id=\$1 AND general`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("g", "u1", "Arquivos gerais", nil, true, time.Now()))

	f, err := repo.GetGeneral(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID != "g" || !f.General {
		t.Fatalf("unexpected folder: %+v", f)
	}
}

func TestCreate(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)INSERT INTO folders .*ON CONFLICT DO NOTHING\s+RETURNING created_at`).
		WithArgs("f1", "u1", "Notas", nil, false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	f := &models.Folder{ID: "f1", UserID: "u1", Name: "Notas"}
	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.CreatedAt.Equal(now) {
		t.Fatalf("created_at not filled: %v", f.CreatedAt)
	}
	met(t, mock)
}

func TestCreate_Conflict(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	mock.ExpectQuery(`INSERT INTO folders`).
		WithArgs("g2", "u1", "Arquivos gerais", nil, true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}))

	err := repo.Create(context.Background(), &models.Folder{ID: "g2", UserID: "u1", Name: "Arquivos gerais", General: true})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
}

func TestRename(t *testing.T) {
	tests := []struct {
		name    string
		result  sql.Result
		execErr error
		wantErr error
		anyErr  bool
	}{
		{name: "ok", result: sqlmock.NewResult(0, 1)},
		{name: "not found", result: sqlmock.NewResult(0, 0), wantErr: common.ErrNotFound},
		{name: "too many rows", result: sqlmock.NewResult(0, 2), anyErr: true},
		{name: "rows affected error", result: sqlmock.NewErrorResult(errors.New("rows-err")), anyErr: true},
		{name: "exec error", execErr: errors.New("db down"), anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _ := newRepoWithMock(t)
			exp := mock.ExpectExec(`UPDATE folders SET name=\$3 WHERE user_id=\$1 AND id=\$2`).WithArgs("u1", "f1", "Novo")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.Rename(context.Background(), "u1", "f1", "Novo")
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
			case tt.anyErr:
				if err == nil {
					t.Fatal("expected error")
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestDelete(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	mock.ExpectExec(`DELETE FROM folders WHERE user_id=\$1 AND id=\$2`).
		WithArgs("u1", "f1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "u1", "f1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	met(t, mock)
}
