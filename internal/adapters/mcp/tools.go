package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"habitgrid/internal/application"
	"habitgrid/internal/application/commands"
	"habitgrid/internal/config"
	"habitgrid/internal/domain"
	"habitgrid/internal/ports"
)

// Deps are the collaborators the tools share
type Deps struct {
	Source  ports.DocumentSource
	Cache   ports.ParseCache
	Scanner *application.Scanner
	// Now defaults to time.Now
	Now func() time.Time
}

// RegisterTools adds every heatmap tool to the MCP server.
func RegisterTools(s *server.MCPServer, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	s.AddTool(heatmapTool(), heatmapHandler(d))
	s.AddTool(parseNoteTool(), parseNoteHandler(d))
	s.AddTool(validateConfigTool(), validateConfigHandler(d))
	s.AddTool(locateTool(), locateHandler(d))
}

// --- heatmap ---

func heatmapTool() mcp.Tool {
	return mcp.NewTool("heatmap",
		mcp.WithDescription("Render the habit heatmap for a note as a text table. The range comes from the note title (week) or the config (month/year)."),
		mcp.WithString("note",
			mcp.Description("Vault-relative note path (e.g. Journal/2026/2026.02.09 - 2026.02.15.md)"),
			mcp.Required(),
		),
		mcp.WithString("config",
			mcp.Description("Heatmap config as YAML or JSON. Omit to use the note's habit-heatmap block."),
		),
	)
}

func heatmapHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		note := req.GetString("note", "")
		raw, err := rawConfig(ctx, d, note, req.GetString("config", ""))
		if err != nil {
			return toolError(err)
		}

		hm, err := commands.NewHeatmapCommand(d.Source, d.Scanner, note, raw).
			WithClock(d.Now).
			Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(FormatHeatmap(hm)), nil
	}
}

// --- parse_note ---

func parseNoteTool() mcp.Tool {
	return mcp.NewTool("parse_note",
		mcp.WithDescription("List the habit values found under each date heading of a note."),
		mcp.WithString("note",
			mcp.Description("Vault-relative note path"),
			mcp.Required(),
		),
	)
}

func parseNoteHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		report, err := commands.NewParseCommand(d.Source, d.Cache, req.GetString("note", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(report.Sections) == 0 {
			return mcp.NewToolResultText("No date headings found."), nil
		}
		return mcp.NewToolResultText(FormatParse(report)), nil
	}
}

// --- validate_config ---

func validateConfigTool() mcp.Tool {
	return mcp.NewTool("validate_config",
		mcp.WithDescription("Check a heatmap config against a note without scanning. Returns every problem, or ok with the resolved range."),
		mcp.WithString("note",
			mcp.Description("Vault-relative note path"),
			mcp.Required(),
		),
		mcp.WithString("config",
			mcp.Description("Heatmap config as YAML or JSON. Omit to use the note's habit-heatmap block."),
		),
	)
}

func validateConfigHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		note := req.GetString("note", "")
		raw, err := rawConfig(ctx, d, note, req.GetString("config", ""))
		if err != nil {
			return toolError(err)
		}

		report, err := commands.NewValidateCommand(d.Source, note, raw).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if !report.OK() {
			return mcp.NewToolResultText(strings.Join(report.Problems, "\n")), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("ok: %s %s..%s (%d days)",
			report.Range.Type, report.Range.Start, report.Range.End, len(report.Range.Dates))), nil
	}
}

// --- locate ---

func locateTool() mcp.Tool {
	return mcp.NewTool("locate",
		mcp.WithDescription("Find the note and heading line a heatmap cell points to."),
		mcp.WithString("note",
			mcp.Description("Vault-relative note path the heatmap belongs to"),
			mcp.Required(),
		),
		mcp.WithString("date",
			mcp.Description("ISO date of the cell (YYYY-MM-DD)"),
			mcp.Required(),
		),
		mcp.WithString("habit",
			mcp.Description("Habit row of the cell"),
		),
		mcp.WithString("config",
			mcp.Description("Heatmap config as YAML or JSON. Omit to use the note's habit-heatmap block."),
		),
	)
}

func locateHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		note := req.GetString("note", "")
		date := req.GetString("date", "")
		if err := application.ValidateISODate("date", date); err != nil {
			return toolError(err)
		}

		raw, err := rawConfig(ctx, d, note, req.GetString("config", ""))
		if err != nil {
			return toolError(err)
		}
		hm, err := commands.NewHeatmapCommand(d.Source, d.Scanner, note, raw).
			WithClock(d.Now).
			Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		target, err := commands.Locate(ctx, d.Cache, hm, date, req.GetString("habit", ""))
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s:%d", target.Path, target.Line)), nil
	}
}

// --- helpers ---

// rawConfig decodes an inline config, or falls back to the note's block
func rawConfig(ctx context.Context, d Deps, note, text string) (map[string]any, error) {
	if err := application.ValidateNotePath("note", note); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) != "" {
		return config.DecodeBlock(text)
	}
	raw, err := config.ForNote(ctx, d.Source, note, "")
	if err != nil {
		return nil, &application.NoteError{Path: note, Reason: err}
	}
	return raw, nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	msgs := domain.Messages(err)
	return mcp.NewToolResultError(strings.Join(msgs, "\n")), nil
}
