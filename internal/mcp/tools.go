package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listGamesTool defines the list_games MCP tool.
var listGamesTool = mcp.NewTool("list_games",
	mcp.WithDescription("List the games in the catalog, optionally filtered by a case-insensitive name substring."),
	mcp.WithString("query",
		mcp.Description("Substring to match against game names"),
	),
)

// getGameTool defines the get_game MCP tool.
var getGameTool = mcp.NewTool("get_game",
	mcp.WithDescription("Get a game's description, metadata, image URLs and video embeds."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Game name exactly as listed by list_games"),
	),
)

// resolveImagesTool defines the resolve_images MCP tool.
var resolveImagesTool = mcp.NewTool("resolve_images",
	mcp.WithDescription("Resolve a game's gallery image URLs and report which strategy produced them."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Game name exactly as listed by list_games"),
	),
)
