package mcp

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/gamecat/internal/viewer"
)

// handleListGames lists catalog entries, filtered by an optional query.
func (s *Server) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := s.app.Catalog()
	if err != nil {
		return mcp.NewToolResultError(viewer.CatalogMessage(err)), nil
	}

	query := request.GetString("query", "")
	games := c.Filter(query)
	if len(games) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No games match %q.", query)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d game(s):\n", len(games))
	for _, g := range games {
		fmt.Fprintf(&sb, "- %s (%s)\n", g.Name, g.Source)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetGame returns a game's metadata, body, images and videos.
func (s *Server) handleGetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	d, err := s.app.Detail(ctx, name)
	if d.Entry.Name == "" {
		return lookupError(name, err), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", d.Entry.Name, viewer.MsgContentUnavailable)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", d.Entry.Name)
	fmt.Fprintf(&sb, "Source: %s\n", d.Entry.Source)
	if d.Summary != "" {
		fmt.Fprintf(&sb, "Summary: %s\n", d.Summary)
	}

	if len(d.Document.Meta) > 0 {
		keys := make([]string, 0, len(d.Document.Meta))
		for k := range d.Document.Meta {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		sb.WriteString("\n## Metadata\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "- %s: %s\n", k, d.Document.Meta[k].String())
		}
	}

	writeList(&sb, "Images", d.Images.URLs, viewer.MsgNoImages)
	writeList(&sb, "Videos", d.Videos, "")

	if body := strings.TrimSpace(d.Document.Body); body != "" {
		sb.WriteString("\n## Description\n")
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleResolveImages reports the gallery of a game and how it was found.
func (s *Server) handleResolveImages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	d, err := s.app.Detail(ctx, name)
	if d.Entry.Name == "" {
		return lookupError(name, err), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", d.Entry.Name, viewer.MsgContentUnavailable)), nil
	}

	if d.Images.Empty() {
		return mcp.NewToolResultText(viewer.MsgNoImages), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Strategy: %s\n", d.Images.Strategy)
	for _, u := range d.Images.URLs {
		sb.WriteString(u)
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func writeList(sb *strings.Builder, title string, items []string, empty string) {
	if len(items) == 0 && empty == "" {
		return
	}
	fmt.Fprintf(sb, "\n## %s\n", title)
	if len(items) == 0 {
		sb.WriteString(empty + "\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(sb, "- %s\n", it)
	}
}

func lookupError(name string, err error) *mcp.CallToolResult {
	if errors.Is(err, viewer.ErrUnknownGame) {
		return mcp.NewToolResultError(fmt.Sprintf("No game named %q. Use list_games to see the catalog.", name))
	}
	return mcp.NewToolResultError(viewer.CatalogMessage(err))
}
