// Package main is the entry point for the accord binary. It dispatches the
// sync, validate, and version subcommands via a switch on os.Args. validate
// runs the loaders only, so a pipeline can gate on spreadsheet consistency
// without touching the remote system.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/accord-sync/accord/internal/config"
	"github.com/accord-sync/accord/internal/desired"
	"github.com/accord-sync/accord/internal/remote/restapi"
	"github.com/accord-sync/accord/internal/report"
	"github.com/accord-sync/accord/internal/syncer"
	"github.com/accord-sync/accord/internal/tabular/xlsx"
	"github.com/accord-sync/accord/internal/telemetry"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}

	switch args[0] {
	case "sync":
		return runSync(args[1:])
	case "validate":
		return runValidate(args[1:])
	case "version":
		fmt.Println("accord " + version)
		return 0
	case "help", "-h", "--help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Synchronize workspaces, roles, and users from spreadsheets.

Usage:
  accord sync     [-config file] <data-dir>   reconcile desired state against the remote system
  accord validate [-config file] <data-dir>   load and validate the spreadsheets only
  accord version                              print the version

Configuration is read from accord.yaml (or -config) and ACCORD_* environment
variables; remote.base_url and remote.credentials_file are required for sync.
`)
}

// loadState parses flags, loads configuration, and assembles the desired
// state shared by sync and validate.
func loadState(name string, args []string) (*config.Config, *desired.State, *report.Console, int) {
	console := report.NewConsole(os.Stdout)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the configuration file")
	if err := fs.Parse(args); err != nil {
		return nil, nil, console, 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: accord %s [-config file] <data-dir>\n", name)
		return nil, nil, console, 2
	}
	dataDir := fs.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		console.Fail(err)
		return nil, nil, console, 1
	}
	telemetry.SetupLogger(cfg.Logging.Format, cfg.Logging.Level)

	userPaths, err := desired.FindUserFiles(filepath.Join(dataDir, cfg.Data.UsersDir))
	if err != nil {
		console.Fail(err)
		return nil, nil, console, 1
	}
	slog.Debug("discovered user workbooks", "count", len(userPaths))

	state, err := desired.Load(desired.Sources{
		Opener:              xlsx.Opener{},
		WorkspacesPath:      filepath.Join(dataDir, cfg.Data.WorkspacesFile),
		RolesPath:           filepath.Join(dataDir, cfg.Data.RolesFile),
		UserPaths:           userPaths,
		WorkspaceSlugColumn: cfg.Columns.WorkspaceSlug,
		WorkspaceNameColumn: cfg.Columns.WorkspaceName,
		UserColumns: desired.UserColumns{
			Workspace: cfg.Columns.UserWorkspace,
			Name:      cfg.Columns.UserName,
			Email:     cfg.Columns.UserEmail,
			Role:      cfg.Columns.UserRole,
			Active:    cfg.Columns.UserActive,
		},
	})
	if err != nil {
		console.Fail(err)
		return nil, nil, console, 1
	}

	console.Success(fmt.Sprintf(" Found %d workspaces", len(state.Workspaces)))
	console.Success(fmt.Sprintf(" Found %d role templates", len(state.Templates)))
	console.Success(fmt.Sprintf(" Found %d users", len(state.Users)))
	return cfg, state, console, 0
}

func runValidate(args []string) int {
	_, _, _, code := loadState("validate", args)
	return code
}

func runSync(args []string) int {
	cfg, state, console, code := loadState("sync", args)
	if code != 0 {
		return code
	}
	if err := cfg.RequireRemote(); err != nil {
		console.Fail(err)
		return 1
	}

	creds, err := restapi.LoadCredentials(cfg.Remote.CredentialsFile)
	if err != nil {
		console.Fail(err)
		return 1
	}
	client, err := restapi.New(cfg.Remote.BaseURL, creds)
	if err != nil {
		console.Fail(err)
		return 1
	}

	s := &syncer.Syncer{
		Remote: client,
		Gate:   report.NewStdinGate(os.Stdin, os.Stdout),
		Sink:   console,
	}
	if err := s.Run(context.Background(), state); err != nil {
		console.Fail(err)
		if !errors.Is(err, syncer.ErrAborted) {
			slog.Error("synchronization failed", "error", err)
		}
		return 1
	}
	return 0
}
