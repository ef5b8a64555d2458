package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

const helpText = "Comandos: (l)ist, open, select, unselect, selectall, filter, move, copy, delete, rename, mkdir, info, reload, exit"

// execIface is the command surface the REPL dispatches to. *App implements
// it; tests use a recording stub.
type execIface interface {
	List(ctx context.Context) error
	Open(ctx context.Context, folderID string) error
	Select(ctx context.Context, folderID, fileID string, checked bool) error
	SelectAll(ctx context.Context, folderID string) error
	Filter(ctx context.Context, query string) error
	Transfer(ctx context.Context, kind models.TransferKind, target, id string) error
	Delete(ctx context.Context, target, id string) error
	Rename(ctx context.Context, target, id string) error
	Mkdir(ctx context.Context, name string) error
	Info(ctx context.Context, target, id string) error
	Reload(ctx context.Context) error
}

// runREPL reads one command per line from in until EOF, exit or quit.
// Handler errors are already reported to the user by the handlers.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("docs %s> ", statusFn()))
		line, err := ReadLine(in)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "open":
			if need(args, 1, "open <pasta>") {
				_ = a.Open(ctx, args[0])
			}

		case "select", "unselect":
			if need(args, 2, cmd+" <pasta> <arquivo>") {
				_ = a.Select(ctx, args[0], args[1], cmd == "select")
			}

		case "selectall":
			if need(args, 1, "selectall <pasta>") {
				_ = a.SelectAll(ctx, args[0])
			}

		case "filter":
			_ = a.Filter(ctx, strings.Join(args, " "))

		case "move", "copy":
			if need(args, 2, cmd+" file|folder <id>") {
				kind := models.TransferMove
				if cmd == "copy" {
					kind = models.TransferCopy
				}
				_ = a.Transfer(ctx, kind, args[0], args[1])
			}

		case "delete":
			if need(args, 2, "delete file|folder|selected <id>") {
				_ = a.Delete(ctx, args[0], args[1])
			}

		case "rename":
			if need(args, 2, "rename file|folder <id>") {
				_ = a.Rename(ctx, args[0], args[1])
			}

		case "mkdir":
			_ = a.Mkdir(ctx, strings.Join(args, " "))

		case "info":
			if need(args, 2, "info file|folder <id>") {
				_ = a.Info(ctx, args[0], args[1])
			}

		case "reload":
			_ = a.Reload(ctx)

		case "exit", "quit":
			printlnFn("Até logo!")
			return

		default:
			printlnFn("Comando desconhecido:", cmd)
		}
	}
}

func need(args []string, n int, usage string) bool {
	if len(args) < n {
		printlnFn("Uso:", usage)
		return false
	}
	return true
}
