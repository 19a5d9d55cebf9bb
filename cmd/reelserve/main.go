// Copyright 2025 The ReelServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the movie recommendation server and CLI application.

ReelServe recommends catalog titles textually similar to a user query. At
startup it loads the movie dataset, builds TF-IDF vectors from each item's
attribute text, and precomputes the full item similarity matrix. Queries are
resolved to known titles with fuzzy matching, so misspellings and partial
input still find the right movie. It can operate as a MessagePack IPC server
for integration with UI shells, or as a CLI application for testing and
debugging.

# Usage

Start the server with the default dataset:

	reelserve

Use a custom dataset and enable debug mode:

	reelserve -data /path/to/movies.csv -d

Run in CLI mode for interactive testing:

	reelserve -c -top 10

The dataset is a CSV file with a title column and the free-text attribute
columns (genres, keywords, tagline, cast, director), or a msgpack snapshot
(.bin) written from a previously loaded catalog.

# Configuration

Runtime configuration is managed through a TOML file covering engine,
resolver, and CLI parameters:

	[engine]
	data_path = "movies.csv"
	top_k = 30

	[resolver]
	resolve_limit = 3
	resolve_min_score = 0.6
	suggest_limit = 5
	suggest_min_score = 0.3

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Suggestion
requests run on every input change; recommendation requests run on submit:

	{"id": "req1", "cmd": "suggest", "q": "av"}
	{"id": "req2", "cmd": "recommend", "q": "avtaar"}

A recommend response carries the resolved title and the ranked related
titles; count 0 means no title cleared the resolution cutoff.

# Degraded startup

If the dataset is missing, unreadable, or empty, the process stays up with an
empty catalog: every query and suggestion reports no match instead of
crashing. The failure is logged once at startup.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/reelserve/internal/cli"
	"github.com/bastiangx/reelserve/pkg/config"
	"github.com/bastiangx/reelserve/pkg/recommend"
	"github.com/bastiangx/reelserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "reelserve"
	gh      = "https://github.com/bastiangx/reelserve"
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

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Path to the movie dataset (.csv or .bin snapshot)")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	topK := flag.Int("top", defaultConfig.Engine.TopK, "Number of recommendations to return")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["version"] = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ ReelServe ] Serves fuzzy movie recommendations!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Warnf("Config load failed, using builtin defaults: %v", err)
		appConfig = config.DefaultConfig()
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	if *topK != defaultConfig.Engine.TopK {
		appConfig.Engine.TopK = *topK
	}
	dataset := appConfig.Engine.DataPath
	if *dataPath != "" {
		dataset = *dataPath
	}
	log.Debugf("Using dataset at: %s", dataset)

	opts := recommend.OptionsFromConfig(appConfig)
	engine, err := recommend.Load(dataset, opts)
	if err != nil {
		// Degrade instead of crash: the shell gets "no match" for everything.
		log.Warnf("Engine init failed (%v), continuing with an empty catalog", err)
		engine = recommend.NewEmpty()
	}

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(engine, appConfig.CLI.MaxQueryLen, appConfig.CLI.SuggestPreview)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	showStartupInfo(dataset, engine)

	srv := server.NewServer(engine)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataset string, engine *recommend.Engine) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" ReelServe ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	if engine.Ready() {
		log.Info("init: OK")
		log.Infof("catalog: %d titles", engine.Len())
	} else {
		log.Warn("init: degraded (empty catalog)")
	}
	log.Infof("dataset: ( %s )", dataset)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
