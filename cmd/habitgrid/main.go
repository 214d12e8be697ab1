package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"habitgrid/internal/adapters/editor"
	"habitgrid/internal/adapters/obsidian"
	"habitgrid/internal/adapters/tui"
	"habitgrid/internal/bootstrap"
	"habitgrid/internal/config"
)

func main() {
	vaultFlag := flag.String("vault", "", "path to the vault (overrides settings)")
	settingsFlag := flag.String("settings", "", "settings file")
	configFlag := flag.String("config", "", "heatmap config file instead of the note's block")
	logFlag := flag.String("log", "", "write debug logs to this file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: habitgrid [flags] <note>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*vaultFlag, *settingsFlag, *configFlag, *logFlag, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(vault, settingsFile, configFile, logFile, note string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	settings, err := config.Load(settingsFile)
	if err != nil {
		return err
	}
	if vault != "" {
		settings.Vault = vault
	}

	stack, err := bootstrap.Build(ctx, settings)
	if err != nil {
		return err
	}
	defer stack.Close()

	events, err := stack.Watch(ctx)
	if err != nil {
		return err
	}

	return tui.Run(ctx, tui.Deps{
		Vault:    stack.Repo,
		Cache:    stack.Cache,
		Scanner:  stack.Scanner,
		Editor:   editor.NewOpener(),
		Obsidian: obsidian.NewOpener(stack.Repo.VaultPath()),
		Events:   events,
	}, note, configFile, logFile)
}
