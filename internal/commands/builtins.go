// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command system for Overseer.
package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Riteg/Overseer/internal/logging"
)

// =============================================================================
// BUILT-IN DEPENDENCIES
// =============================================================================

// Deps carries the collaborators the built-in commands act on. Handlers
// receive their dependencies here instead of reaching for globals, so
// tests can construct fresh instances.
type Deps struct {
	// Store is the log store operated on by clear and log.
	Store *logging.Store

	// Filter is the shared display filter adjusted by loglevel/channels.
	Filter *logging.Filter

	// Registry is consulted by help for names and help text.
	Registry *Registry
}

// Builtins returns the built-in command set as a Discovery, ready for
// Registry.RegisterAll.
func Builtins(deps Deps) HandlerList {
	return HandlerList{
		&FuncHandler{
			CmdName: "help",
			CmdHelp: "help [name] - list all commands, or show one command's help",
			Fn:      deps.help,
		},
		&FuncHandler{
			CmdName: "clear",
			CmdHelp: "clear - remove all entries from the log store",
			Fn:      deps.clear,
		},
		&FuncHandler{
			CmdName: "echo",
			CmdHelp: "echo <args...> - return the positional arguments joined by spaces",
			Fn:      deps.echo,
		},
		&FuncHandler{
			CmdName: "log",
			CmdHelp: "log [--level=info] [--channel=core] <message...> - inject a log entry",
			Fn:      deps.log,
		},
		&FuncHandler{
			CmdName: "tail",
			CmdHelp: "tail [n] - print the newest n log entries (default 10) passing the display filter",
			Fn:      deps.tail,
		},
		&FuncHandler{
			CmdName: "channels",
			CmdHelp: "channels - list log channels and the current display mask",
			Fn:      deps.channels,
		},
		&FuncHandler{
			CmdName: "loglevel",
			CmdHelp: "loglevel [level] - show or set the display level threshold",
			Fn:      deps.loglevel,
		},
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

func (d Deps) help(_ context.Context, inv *Invocation) (string, error) {
	if name, ok := inv.Arg(0); ok {
		h, found := d.Registry.Get(name)
		if !found {
			return fmt.Sprintf("unknown command: %q (type \"help\" for a list of commands)", name), nil
		}
		return h.Help(), nil
	}

	names := d.Registry.Names()
	if len(names) == 0 {
		return "no commands registered", nil
	}

	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}

	var b strings.Builder
	b.WriteString("available commands:\n")
	for _, name := range names {
		h, _ := d.Registry.Get(name)
		fmt.Fprintf(&b, "  %-*s  %s\n", width, name, helpSummary(h.Help()))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// helpSummary reduces a help string to its description, dropping the
// leading "name [args] - " usage part if present.
func helpSummary(help string) string {
	if _, desc, found := strings.Cut(help, " - "); found {
		return desc
	}
	return help
}

func (d Deps) clear(_ context.Context, _ *Invocation) (string, error) {
	if err := d.Store.Clear(); err != nil {
		return "", err
	}
	return "log store cleared", nil
}

func (d Deps) echo(_ context.Context, inv *Invocation) (string, error) {
	return strings.Join(inv.Positional, " "), nil
}

func (d Deps) log(_ context.Context, inv *Invocation) (string, error) {
	level := logging.LevelInfo
	if name, ok := inv.Option("level"); ok {
		l, err := logging.ParseLevel(name)
		if err != nil {
			return fmt.Sprintf("invalid level %q (one of: trace, debug, info, warning, error)", name), nil
		}
		level = l
	}

	channel := logging.ChannelCore
	if name, ok := inv.Option("channel"); ok {
		c, err := logging.ParseChannel(name)
		if err != nil {
			return fmt.Sprintf("invalid channel %q (one of: %s, all)", name, strings.Join(logging.ChannelNames(), ", ")), nil
		}
		channel = c
	}

	message := strings.Join(inv.Positional, " ")
	if message == "" {
		return "usage: log [--level=info] [--channel=core] <message...>", nil
	}

	entry := logging.NewEntry(level, channel, message)
	entry.ContextName = "console"
	if err := d.Store.Add(entry); err != nil {
		return "", err
	}
	return fmt.Sprintf("logged %s/%s entry", level, channel), nil
}

func (d Deps) tail(_ context.Context, inv *Invocation) (string, error) {
	n := 10
	if arg, ok := inv.Arg(0); ok {
		parsed, err := strconv.Atoi(arg)
		if err != nil || parsed <= 0 {
			return fmt.Sprintf("invalid count %q (want a positive number)", arg), nil
		}
		n = parsed
	}

	var buf []logging.Entry
	d.Store.Snapshot(&buf)

	var shown []string
	for _, e := range buf {
		if d.Filter != nil && !d.Filter.Allow(e) {
			continue
		}
		shown = append(shown, fmt.Sprintf("%s %-7s [%s] %s",
			e.Time.Format("15:04:05.000"), e.Level, e.Channel, e.Message))
	}
	if len(shown) == 0 {
		return "no log entries", nil
	}
	if len(shown) > n {
		shown = shown[len(shown)-n:]
	}
	return strings.Join(shown, "\n"), nil
}

func (d Deps) channels(_ context.Context, _ *Invocation) (string, error) {
	var b strings.Builder
	b.WriteString("log channels:\n")
	mask := logging.ChannelAll
	if d.Filter != nil {
		mask = d.Filter.Channels()
	}
	for _, name := range logging.ChannelNames() {
		c, _ := logging.ParseChannel(name)
		marker := " "
		if mask.Has(c) {
			marker = "*"
		}
		fmt.Fprintf(&b, "  [%s] %s\n", marker, name)
	}
	b.WriteString("(* = shown by the current display mask)")
	return b.String(), nil
}

func (d Deps) loglevel(_ context.Context, inv *Invocation) (string, error) {
	if d.Filter == nil {
		return "no display filter attached to this console", nil
	}

	name, ok := inv.Arg(0)
	if !ok {
		return fmt.Sprintf("display level: %s", d.Filter.MinLevel()), nil
	}

	level, err := logging.ParseLevel(name)
	if err != nil {
		return fmt.Sprintf("invalid level %q (one of: trace, debug, info, warning, error)", name), nil
	}
	d.Filter.SetMinLevel(level)
	return fmt.Sprintf("display level set to %s", level), nil
}
