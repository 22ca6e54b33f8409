// Copyright 2026 The SearchKit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the searchkit suggestion engine as a standalone process.

SearchKit is the faceted search and suggestion core of a community blogging
platform: a debounced query controller, a substring suggestion engine over a
catalog source, a facet filter store and a persisted recent-search journal.
The binary wraps that library three ways:

Server mode (default) speaks msgpack IPC over stdin/stdout so a host process
can request suggestions and record submitted searches:

	searchkit

CLI mode reads queries line by line, for testing and debugging:

	searchkit -c

TUI mode runs an interactive terminal search bar with live debounced
suggestions, the closest analogue of the web host:

	searchkit -tui

# Configuration

Runtime configuration lives in a TOML file, created with defaults on first
run:

	[search]
	debounce_ms = 300
	latency_ms = 300
	max_suggestions = 8
	enable_advanced_search = true

	[journal]
	max_entries = 5
	store_dir = "~/.config/searchkit"

The journal persists through a file-per-key store by default; set
journal.store_path (or the -store flag) to use a SQLite database instead.
When no durable store can be opened the journal degrades to session-only
operation rather than failing startup.

# Flags

	-version    Show current version
	-d          Enable debug logging
	-c          Run CLI mode instead of the IPC server
	-tui        Run the interactive terminal search bar
	-config     Path to config.toml
	-store      Path to a SQLite journal store
	-mem        Keep the journal in memory only
	-index      Serve catalog lookups from a bleve index instead of the
	            trie-backed scan (same observable ordering)
	-limit      Maximum suggestions per lookup
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/quillboard/searchkit/internal/cli"
	"github.com/quillboard/searchkit/internal/storage"
	"github.com/quillboard/searchkit/internal/tui"
	"github.com/quillboard/searchkit/pkg/config"
	"github.com/quillboard/searchkit/pkg/journal"
	"github.com/quillboard/searchkit/pkg/searchbar"
	"github.com/quillboard/searchkit/pkg/server"
	"github.com/quillboard/searchkit/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "searchkit"
	gh      = "https://github.com/quillboard/searchkit"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true)
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true)
	logger.SetStyles(styles)

	logger.Print("[ SearchKit ] Faceted search suggestions for blogs")
	logger.Print("", "version", Version)
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// openStore picks the journal store: SQLite when a path is set, otherwise
// per-key files. Any failure falls back to a session-only memory store.
func openStore(cfg *config.Config, sqlitePath string, memOnly bool) journal.Store {
	if memOnly {
		return storage.NewMemStore()
	}
	if sqlitePath != "" {
		st, err := storage.OpenSQLite(sqlitePath)
		if err != nil {
			log.Warnf("Failed to open journal db at %s: %v. Journal is session-only.", sqlitePath, err)
			return storage.NewMemStore()
		}
		return st
	}
	st, err := storage.NewFileStore(cfg.Journal.StoreDir)
	if err != nil {
		log.Warnf("Failed to open journal dir at %s: %v. Journal is session-only.", cfg.Journal.StoreDir, err)
		return storage.NewMemStore()
	}
	return st
}

// main wires config, store, catalog, engine and journal together and hands
// off to the selected mode. It holds no logic of its own.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI mode -- useful for testing and debugging")
	tuiMode := flag.Bool("tui", false, "Run the interactive terminal search bar")
	configPath := flag.String("config", "", "Path to config.toml")
	storePath := flag.String("store", "", "Path to a SQLite journal store")
	memOnly := flag.Bool("mem", false, "Keep the journal in memory only")
	useIndex := flag.Bool("index", false, "Serve catalog lookups from a bleve index")
	limit := flag.Int("limit", 0, "Maximum suggestions per lookup (default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg := config.InitConfig(*configPath)
	if *limit <= 0 {
		*limit = cfg.Search.MaxSuggestions
	}

	sqlitePath := *storePath
	if sqlitePath == "" && cfg.Journal.StorePath != "" {
		sqlitePath = cfg.Journal.StorePath
	}
	if sqlitePath != "" && !filepath.IsAbs(sqlitePath) {
		if abs, err := filepath.Abs(sqlitePath); err == nil {
			sqlitePath = abs
		}
	}

	store := openStore(cfg, sqlitePath, *memOnly)
	jr := journal.NewWithCap(store, cfg.Journal.MaxEntries)
	jr.Load()

	catalog := suggest.DefaultCatalog()
	var source suggest.Source = catalog
	if *useIndex {
		idx, err := suggest.NewIndexSource(catalog.Entries())
		if err != nil {
			log.Fatalf("Failed to build suggestion index: %v", err)
		}
		defer idx.Close()
		source = idx
		log.Debugf("Serving lookups from bleve index over %d entries", catalog.Len())
	}

	engine := suggest.NewEngine(source, jr, *limit)

	switch {
	case *cliMode:
		handler := cli.NewInputHandler(engine, jr)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	case *tuiMode:
		opts := searchbar.DefaultOptions()
		opts.Debounce = time.Duration(cfg.Search.DebounceMs) * time.Millisecond
		opts.Latency = time.Duration(cfg.Search.LatencyMs) * time.Millisecond
		opts.EnableAdvancedSearch = cfg.Search.EnableAdvancedSearch
		if err := tui.Run(engine, jr, opts); err != nil {
			log.Fatalf("TUI error: %v", err)
		}
	default:
		log.Debug("spawning IPC")
		srv := server.NewServer(engine, jr, os.Stdin, os.Stdout)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}
