// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main serves weighted prefix completions from a static corpus.

A corpus is a list of terms, each a word with a weight. Every query asks for
the k heaviest terms whose word starts with a prefix. Six interchangeable
engines answer the same query with different time and memory tradeoffs:

	brute       linear scan with a bounded heap
	slowbrute   filter then full sort
	binary      sorted array with two binary searches
	hashprefix  precomputed map from every short prefix to its sorted terms
	trie        patricia trie subtree walk
	btree       ordered b-tree range scan

# Usage

Start the msgpack IPC server over stdin/stdout with the configured engine:

	autocomplete -data words.txt

Pick an engine and query it interactively:

	autocomplete -engine trie -c -limit 5

Time every engine over the corpus, or check them against the brute force scan:

	autocomplete -data data/ -bench
	autocomplete -data data/ -verify

The corpus is either a text file of "<weight> <word>" lines, optionally led by
the term count, or a directory of dict_NNNN.bin chunk files.

# Configuration

Settings come from a TOML file, created with defaults when missing:

	[engine]
	kind = "binary"
	max_prefix = 10

	[server]
	max_limit = 64
	min_prefix = 0
	max_prefix = 60
	default_limit = 10

	[corpus]
	path = "data/words.txt"

Flags given on the command line take precedence over the file.

# IPC Protocol

See package server for the message shapes:

	{"id": "req1", "p": "he", "l": 5}
	{"id": "req1", "s": [{"w": "hello", "r": 1, "x": 812}], "c": 1, "t": 9}

# Command Line Flags

	-data string      corpus file or chunk directory
	-engine string    brute, slowbrute, binary, hashprefix, trie or btree
	-config string    config file path
	-maxprefix int    prefix length indexed by the hashprefix engine
	-limit int        suggestions per query in CLI mode
	-prmin int        minimum prefix length in CLI mode
	-prmax int        maximum prefix length in CLI mode
	-no-filter        disable CLI input filtering
	-bench            benchmark every engine and exit
	-verify           compare every engine with brute force and exit
	-c                interactive CLI instead of the server
	-d                debug logging
	-version          print the version and exit
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/autocomplete/internal/cli"
	"github.com/bastiangx/autocomplete/internal/logger"
	"github.com/bastiangx/autocomplete/internal/utils"
	"github.com/bastiangx/autocomplete/pkg/bench"
	"github.com/bastiangx/autocomplete/pkg/config"
	"github.com/bastiangx/autocomplete/pkg/dictionary"
	"github.com/bastiangx/autocomplete/pkg/server"
	"github.com/bastiangx/autocomplete/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

const (
	Version = "0.1.0"
	AppName = "autocomplete"
	gh      = "https://github.com/bastiangx/autocomplete"
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

type flags struct {
	showVersion bool
	dataPath    string
	engineKind  string
	configPath  string
	maxPrefix   int
	limit       int
	minLen      int
	maxLen      int
	noFilter    bool
	benchMode   bool
	verifyMode  bool
	cliMode     bool
	debugMode   bool
}

// main only manages the flow; the packages own the logic.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	var f flags
	flag.BoolVar(&f.showVersion, "version", false, "Show current version")
	flag.StringVar(&f.dataPath, "data", defaults.Corpus.Path, "Corpus text file or directory of dict_*.bin chunks")
	flag.StringVar(&f.engineKind, "engine", defaults.Engine.Kind, "Engine: brute, slowbrute, binary, hashprefix, trie or btree")
	flag.StringVar(&f.configPath, "config", "", "Path to a config.toml")
	flag.IntVar(&f.maxPrefix, "maxprefix", defaults.Engine.MaxPrefix, "Prefix length indexed by the hashprefix engine")
	flag.IntVar(&f.limit, "limit", defaults.CLI.DefaultLimit, "Number of suggestions to return in CLI mode")
	flag.IntVar(&f.minLen, "prmin", defaults.CLI.DefaultMinLen, "Minimum prefix length in CLI mode")
	flag.IntVar(&f.maxLen, "prmax", defaults.CLI.DefaultMaxLen, "Maximum prefix length in CLI mode")
	flag.BoolVar(&f.noFilter, "no-filter", defaults.CLI.DefaultNoFilter, "Disable CLI input filtering (numbers, symbols, repeats)")
	flag.BoolVar(&f.benchMode, "bench", false, "Benchmark every engine over the corpus and exit")
	flag.BoolVar(&f.verifyMode, "verify", false, "Check every engine against brute force and exit")
	flag.BoolVar(&f.cliMode, "c", false, "Run CLI -- useful for testing and debugging")
	flag.BoolVar(&f.debugMode, "d", false, "Toggle debug mode")
	flag.Parse()

	if f.showVersion {
		printVersion()
		return
	}
	logger.Setup(f.debugMode)

	cfg, cfgPath, err := config.LoadConfigWithPriority(f.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(cfgPath))
	applyFlags(cfg, f)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	kind, err := suggest.ParseKind(cfg.Engine.Kind)
	if err != nil {
		log.Fatalf("%v", err)
	}
	engineOpts := suggest.Options{MaxPrefix: cfg.Engine.MaxPrefix}

	corpusPath := cfg.Corpus.Path
	if resolver, err := utils.NewPathResolver(); err == nil {
		corpusPath = resolver.ResolveCorpus(corpusPath)
	} else {
		log.Warnf("Path resolution unavailable, using %s as given: %v", corpusPath, err)
	}
	corpus, err := dictionary.Load(corpusPath)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	log.Debugf("Loaded %s terms from %s", humanize.Comma(int64(corpus.Len())), corpusPath)

	benchOpts := bench.Options{
		Prefixes: cfg.Bench.Prefixes,
		K:        cfg.Bench.K,
		Repeat:   cfg.Bench.Repeat,
		Engine:   engineOpts,
	}
	switch {
	case f.benchMode:
		results, err := bench.Run(corpus, benchOpts)
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
		bench.Report(os.Stdout, results)
		return
	case f.verifyMode:
		mismatches, err := bench.Verify(corpus, benchOpts)
		if err != nil {
			log.Fatalf("Verification failed: %v", err)
		}
		for _, m := range mismatches {
			fmt.Fprintln(os.Stdout, m)
		}
		if len(mismatches) > 0 {
			log.Errorf("%d mismatches", len(mismatches))
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "all engines agree on %d prefixes\n", len(benchOpts.Prefixes))
		return
	}

	engine, err := suggest.New(kind, corpus.Words, corpus.Weights, engineOpts)
	if err != nil {
		log.Fatalf("Failed to init %s engine: %v", kind, err)
	}
	log.Debug("Engine ready", "kind", kind, "size", humanize.Bytes(uint64(engine.SizeInBytes())))

	if f.cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", cfg.CLI.DefaultMinLen,
			"maxPrefix", cfg.CLI.DefaultMaxLen,
			"limit", cfg.CLI.DefaultLimit,
			"noFilter", cfg.CLI.DefaultNoFilter)

		inputHandler := cli.NewInputHandler(engine, os.Stdin, os.Stdout,
			cfg.CLI.DefaultMinLen, cfg.CLI.DefaultMaxLen, cfg.CLI.DefaultLimit, cfg.CLI.DefaultNoFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, server.Options{
		Kind:   kind,
		Terms:  corpus.Len(),
		Config: cfg.Server,
	}, os.Stdin, os.Stdout)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// applyFlags copies explicitly set flags over the loaded config
func applyFlags(cfg *config.Config, f flags) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "data":
			cfg.Corpus.Path = f.dataPath
		case "engine":
			cfg.Engine.Kind = f.engineKind
		case "maxprefix":
			cfg.Engine.MaxPrefix = f.maxPrefix
		case "limit":
			cfg.CLI.DefaultLimit = f.limit
		case "prmin":
			cfg.CLI.DefaultMinLen = f.minLen
		case "prmax":
			cfg.CLI.DefaultMaxLen = f.maxLen
		case "no-filter":
			cfg.CLI.DefaultNoFilter = f.noFilter
		}
	})
}

func printVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ " + AppName + " ] weighted prefix completions")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}
