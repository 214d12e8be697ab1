package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "habitgrid/internal/adapters/mcp"
	"habitgrid/internal/adapters/watch"
	"habitgrid/internal/bootstrap"
	"habitgrid/internal/config"
	"habitgrid/internal/ctxlog"
)

func main() {
	vaultFlag := flag.String("vault", "", "path to the vault (overrides settings)")
	settingsFlag := flag.String("settings", "", "settings file")
	verboseFlag := flag.Bool("verbose", false, "log debug output to stderr")
	flag.Parse()

	// stdout carries the protocol, so logs go to stderr
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(os.Stderr, *verboseFlag))

	settings, err := config.Load(*settingsFlag)
	if err != nil {
		log.Fatalf("habitgrid-mcp: %v", err)
	}
	if *vaultFlag != "" {
		settings.Vault = *vaultFlag
	}

	stack, err := bootstrap.Build(ctx, settings)
	if err != nil {
		log.Fatalf("habitgrid-mcp: %v", err)
	}
	defer stack.Close()

	// Keep the parse cache fresh while the server runs
	events, err := stack.Watch(ctx)
	if err != nil {
		log.Fatalf("habitgrid-mcp: %v", err)
	}
	go watch.Invalidate(ctx, events, stack.Cache)

	mcpServer := server.NewMCPServer(
		"habitgrid-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, mcpadapter.Deps{
		Source:  stack.Repo,
		Cache:   stack.Cache,
		Scanner: stack.Scanner,
	})

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Printf("habitgrid-mcp: %v", err)
	}
}
