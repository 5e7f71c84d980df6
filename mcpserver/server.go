package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/battlecode-hq/botclient/client"
	"github.com/battlecode-hq/botclient/geometry"
	"github.com/battlecode-hq/botclient/world"
)

// Server wraps a *client.Game with an MCP tool surface: get_state,
// list_entities, queue_move, queue_build, queue_pickup, queue_throw,
// queue_disintegrate, submit_turn.
type Server struct {
	game      *client.Game
	mcpServer *server.MCPServer
}

// New builds a Server around game and registers its tools.
func New(game *client.Game) *Server {
	s := &Server{game: game}
	s.mcpServer = server.NewMCPServer(
		"Battlecode Bot",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Battlecode bot control surface.

This exposes the live world mirror of a connected bot as MCP tools. Queue
actions against the current turn's entities with queue_move/queue_build/
queue_pickup/queue_throw/queue_disintegrate, then call submit_turn to
advance. get_state and list_entities give you a read-only view first.`),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server, for the caller to serve
// over stdio or HTTP as it sees fit.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_state",
		Description: "Report the current turn number, this bot's team id, and the winner if the game has ended",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}},
	}, s.handleGetState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_entities",
		Description: "List every known entity, optionally filtered by team id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"team_id": map[string]interface{}{
					"type":        "integer",
					"description": "Restrict to this team id (omit for all teams)",
				},
			},
		},
	}, s.handleListEntities)

	s.mcpServer.AddTool(entityActionTool("queue_move", "Queue a move for the given entity in a direction"), s.handleQueueMove)
	s.mcpServer.AddTool(entityActionTool("queue_build", "Queue a statue build for the given entity in a direction"), s.handleQueueBuild)
	s.mcpServer.AddTool(entityActionTool("queue_throw", "Queue a throw of the entity's held unit in a direction"), s.handleQueueThrow)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "queue_pickup",
		Description: "Queue one entity picking up an adjacent one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id":     map[string]interface{}{"type": "integer", "description": "Id of the entity performing the pickup"},
				"target": map[string]interface{}{"type": "integer", "description": "Id of the entity to pick up"},
			},
			Required: []string{"id", "target"},
		},
	}, s.handleQueuePickup)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "queue_disintegrate",
		Description: "Queue self-disintegration for the given entity",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"id": map[string]interface{}{"type": "integer", "description": "Entity id"}},
			Required:   []string{"id"},
		},
	}, s.handleQueueDisintegrate)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "submit_turn",
		Description: "Submit the queued actions and block for the next turn addressed to this bot",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}},
	}, s.handleSubmitTurn)
}

func entityActionTool(name, description string) mcp.Tool {
	return mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{"type": "integer", "description": "Entity id"},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"},
					"description": "Compass direction",
				},
			},
			Required: []string{"id", "direction"},
		},
	}
}

func parseDirection(s string) (geometry.Direction, error) {
	for _, d := range geometry.Directions() {
		if d.String() == s {
			return d, nil
		}
	}
	return geometry.Direction{}, fmt.Errorf("mcpserver: unknown direction %q", s)
}

func argInt(args map[string]interface{}, key string) (int64, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.game.State()
	result := fmt.Sprintf("turn=%d myTeam=%d", st.Turn(), s.game.MyTeamID())
	if winner, ok := s.game.Winner(); ok {
		result += fmt.Sprintf(" winner=%d", winner)
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListEntities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	filter := world.EntityFilter{}
	if teamID, ok := argInt(args, "team_id"); ok {
		tid := world.TeamID(teamID)
		filter.Team = &tid
	}

	var out string
	for _, h := range s.game.State().Entities(filter) {
		out += h.Entity().String() + "\n"
	}
	if out == "" {
		out = "(no entities)"
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) resolveEntity(args map[string]interface{}) (*world.EntityHandle, error) {
	id, ok := argInt(args, "id")
	if !ok {
		return nil, fmt.Errorf("mcpserver: missing id")
	}
	h, ok := s.game.State().Entity(world.EntityID(id))
	if !ok {
		return nil, fmt.Errorf("mcpserver: no such entity %d", id)
	}
	return h, nil
}

func (s *Server) handleQueueMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	h, err := s.resolveEntity(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := parseDirection(fmt.Sprint(args["direction"]))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.QueueMove(d); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("queued"), nil
}

func (s *Server) handleQueueBuild(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	h, err := s.resolveEntity(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := parseDirection(fmt.Sprint(args["direction"]))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.QueueBuild(d); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("queued"), nil
}

func (s *Server) handleQueueThrow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	h, err := s.resolveEntity(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := parseDirection(fmt.Sprint(args["direction"]))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.QueueThrow(d); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("queued"), nil
}

func (s *Server) handleQueuePickup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	h, err := s.resolveEntity(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	targetID, ok := argInt(args, "target")
	if !ok {
		return mcp.NewToolResultError("mcpserver: missing target"), nil
	}
	target, ok := s.game.State().Entity(world.EntityID(targetID))
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("mcpserver: no such entity %d", targetID)), nil
	}
	if err := h.QueuePickup(target); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("queued"), nil
}

func (s *Server) handleQueueDisintegrate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	h, err := s.resolveEntity(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.QueueDisintegrate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("queued"), nil
}

func (s *Server) handleSubmitTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.game.NextTurn()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if st == nil {
		winner, _ := s.game.Winner()
		return mcp.NewToolResultText(fmt.Sprintf("game over, winner=%d", winner)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("turn=%d", st.Turn())), nil
}
