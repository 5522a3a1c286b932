// Overseer - an embeddable diagnostics console for long-running
// interactive applications.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/Riteg/Overseer/internal/cli"
	"github.com/Riteg/Overseer/internal/commands"
	"github.com/Riteg/Overseer/internal/config"
	"github.com/Riteg/Overseer/internal/console"
	"github.com/Riteg/Overseer/internal/logging"
	"github.com/Riteg/Overseer/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		plain       = flag.Bool("plain", false, "run the plain-terminal REPL instead of the TUI")
		demo        = flag.Bool("demo", false, "generate sample log traffic in the background")
		configPath  = flag.String("config", "", "path to config.toml (default ~/.overseer/config.toml)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("overseer %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Process-wide core instances: one store, one registry, one display
	// filter, explicitly constructed and handed to whoever needs them.
	store := logging.NewStore(cfg.Log.Capacity)
	filter := logging.NewFilter(cfg.DisplayLevel(), cfg.DisplayChannels())

	registry := commands.NewRegistry()
	registry.RegisterAll(commands.Builtins(commands.Deps{
		Store:    store,
		Filter:   filter,
		Registry: registry,
	}))

	// Live-reload the display filter when the config file changes.
	if watcher := startConfigWatcher(*configPath, store, filter); watcher != nil {
		defer watcher.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *demo {
		runDemoProducer(ctx, store)
	}

	logging.NewLogger(store, logging.ChannelCore, "overseer").
		Infof("console started (version %s)", Version)

	if *plain {
		repl, err := cli.NewREPL(registry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := repl.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	session := console.NewSession(registry, cfg.Console.HistoryLimit)
	if err := ui.Run(cfg, store, filter, session); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// startConfigWatcher wires config hot-reload onto the display filter.
// Failure to watch is not fatal; the console just runs with the startup
// config.
func startConfigWatcher(path string, store *logging.Store, filter *logging.Filter) *config.Watcher {
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return nil
		}
		path = p
	}

	log := logging.NewLogger(store, logging.ChannelCore, "config")
	watcher, err := config.NewWatcher(path, time.Second, func(cfg *config.Config) {
		filter.SetMinLevel(cfg.DisplayLevel())
		filter.SetChannels(cfg.DisplayChannels())
		log.Infof("config reloaded: display level %s, channels %s",
			cfg.DisplayLevel(), cfg.DisplayChannels())
	})
	if err != nil {
		return nil
	}
	if err := watcher.Watch(); err != nil {
		watcher.Close()
		return nil
	}
	return watcher
}

// =============================================================================
// DEMO TRAFFIC
// =============================================================================

// runDemoProducer exercises the concurrent add path: several goroutines
// log sample traffic through one shared rate limiter so the console has
// something to show without flooding the ring.
func runDemoProducer(ctx context.Context, store *logging.Store) {
	limiter := rate.NewLimiter(rate.Limit(8), 4)

	producers := []struct {
		channel logging.Channel
		context string
		lines   []string
	}{
		{logging.ChannelRender, "renderer", []string{
			"frame presented", "shader cache warm", "vsync missed",
		}},
		{logging.ChannelNet, "netcode", []string{
			"heartbeat sent", "packet resend requested", "latency spike detected",
		}},
		{logging.ChannelGameplay, "world", []string{
			"entity spawned", "checkpoint saved", "script event fired",
		}},
	}

	for _, p := range producers {
		p := p
		go func() {
			log := logging.NewLogger(store, p.channel, p.context)
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			for {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				line := p.lines[rng.Intn(len(p.lines))]
				switch rng.Intn(10) {
				case 0:
					log.Warningf("%s", line)
				case 1:
					log.Debugf("%s", line)
				default:
					log.Infof("%s", line)
				}
			}
		}()
	}
}
