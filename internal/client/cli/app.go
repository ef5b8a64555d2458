package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/docfolders/internal/client/actions"
	"github.com/dmitrijs2005/docfolders/internal/client/client"
	"github.com/dmitrijs2005/docfolders/internal/client/config"
	"github.com/dmitrijs2005/docfolders/internal/client/services"
	"github.com/dmitrijs2005/docfolders/internal/client/tree"
	"github.com/dmitrijs2005/docfolders/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// API is what the CLI needs from the backend client.
type API interface {
	actions.API
	services.Lister
	Ping(ctx context.Context) error
	Close() error
}

// tokenSetter is implemented by clients whose token can change after start.
type tokenSetter interface {
	SetToken(token string)
}

type App struct {
	config    *config.Config
	api       API
	repos     *client.Repositories
	folders   services.FolderService
	tree      *tree.Tree
	deps      actions.Deps
	logger    logging.Logger
	in        *bufio.Reader
	out       io.Writer
	modeMu    sync.Mutex
	mode      Mode
	closeOnce sync.Once
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	repos, err := client.InitDatabase(ctx, c.CachePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing cache: %w", err)
	}

	api, err := client.NewHTTPClient(c.BaseURL, c.Token, client.WithTimeout(c.RequestTimeout))
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	return newApp(c, api, repos, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api API, repos *client.Repositories, logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config:  c,
		api:     api,
		repos:   repos,
		folders: services.NewFolderService(api, repos.Snapshots, logger),
		tree:    tree.New(nil),
		logger:  logger.With("module", "cli"),
		in:      bufio.NewReader(in),
		out:     out,
		mode:    ModeOnline,
	}
	a.deps = actions.Deps{
		Store:    a.tree,
		API:      api,
		Notifier: &consoleNotifier{w: out, names: a.fileName},
		Logger:   logger,
	}
	return a
}

// Run asks for a token when none is configured, loads the tree and serves
// the REPL until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "docfolders CLI (digite 'help' para ver os comandos)")

	if a.config.Token == "" {
		if ts, ok := a.api.(tokenSetter); ok {
			token, err := GetToken(a.out)
			if err != nil {
				a.logger.Warn(ctx, "token prompt failed", "error", err)
			}
			ts.SetToken(token)
		}
	}

	if err := a.Reload(ctx); err != nil {
		fmt.Fprintln(a.out, "Não foi possível carregar as pastas:", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.in)
}

func (a *App) Close() {
	a.closeOnce.Do(func() {
		if err := a.folders.Save(context.Background(), a.tree.Snapshot()); err != nil {
			a.logger.Warn(context.Background(), "failed to save cache", "error", err)
		}
		_ = a.api.Close()
		_ = a.repos.Close()
	})
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()
	if changed {
		a.logger.Info(context.Background(), "mode changed", "mode", string(mode))
	}
}

func (a *App) getStatus() string {
	s := string(a.Mode())
	if q := a.tree.Query(); q != "" {
		s += " filtro:" + q
	}
	return "(" + s + ")"
}

// StartOnlineStatusWatcher pings the backend every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.api.Ping(pctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// persist writes the tree to the cache after a successful mutation.
func (a *App) persist(ctx context.Context) {
	if err := a.folders.Save(ctx, a.tree.Snapshot()); err != nil {
		a.logger.Warn(ctx, "failed to save cache", "error", err)
	}
}

func (a *App) fileName(id string) string {
	if _, f, ok := a.tree.FolderOf(id); ok {
		return f.Name
	}
	return id
}
