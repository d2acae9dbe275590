package launcher

import (
	"context"
	"log/slog"

	"github.com/mcoot/haunt/internal/model"
)

// DefaultScene is loaded when no scene is requested
const DefaultScene = "Lobby"

// LaunchParams is what the multiplayer layer needs to connect a player
type LaunchParams struct {
	SessionID  string
	PlayerName string
	PlayerID   model.PlayerID
	Scene      string
}

// GameLauncher connects to the multiplayer backend and loads the game.
// It is only invoked for a logged in player.
type GameLauncher interface {
	ConnectAndLoad(ctx context.Context, params LaunchParams) error
}

// Logging is a GameLauncher that records the hand-off and does nothing else
type Logging struct {
	logger *slog.Logger

	// Launches holds every hand-off in order
	Launches []LaunchParams
}

// Ensure Logging implements GameLauncher
var _ GameLauncher = (*Logging)(nil)

// NewLogging creates a Logging launcher
func NewLogging(logger *slog.Logger) *Logging {
	return &Logging{logger: logger}
}

// ConnectAndLoad logs the hand-off
func (l *Logging) ConnectAndLoad(ctx context.Context, params LaunchParams) error {
	if params.Scene == "" {
		params.Scene = DefaultScene
	}
	l.Launches = append(l.Launches, params)
	l.logger.InfoContext(ctx, "starting game",
		slog.String("session_id", params.SessionID),
		slog.String("player_name", params.PlayerName),
		slog.String("player_id", string(params.PlayerID)),
		slog.String("scene", params.Scene),
	)
	return nil
}
