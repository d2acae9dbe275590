package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/haunt/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == formatJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	ce := toCLIError(err)
	if o.format == formatJSON {
		data, _ := json.Marshal(map[string]any{"error": ce})
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", ce.Message)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == formatJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Identity:
		o.printIdentity(v)
	case Launch:
		o.printLaunch(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Identity is the printed form of a player record
type Identity struct {
	PlayerName string `json:"player_name"`
	PlayerID   string `json:"player_id"`
	Provider   string `json:"provider"`
	State      string `json:"state"`
}

// Launch is the printed form of a game hand-off
type Launch struct {
	SessionID string   `json:"session_id"`
	Identity  Identity `json:"identity"`
	Scene     string   `json:"scene"`
}

func identityFrom(rec model.IdentityRecord, state model.State) Identity {
	return Identity{
		PlayerName: rec.PlayerName,
		PlayerID:   string(rec.PlayerID),
		Provider:   rec.Provider.String(),
		State:      state.String(),
	}
}

func (o *Output) printIdentity(id Identity) {
	fmt.Fprintf(o.out, "Player: %s (%s)\n", id.PlayerName, id.PlayerID)
	fmt.Fprintf(o.out, "Provider: %s\n", id.Provider)
	fmt.Fprintf(o.out, "State: %s\n", id.State)
}

func (o *Output) printLaunch(l Launch) {
	o.printIdentity(l.Identity)
	fmt.Fprintf(o.out, "Scene: %s\n", l.Scene)
	fmt.Fprintf(o.out, "Session: %s\n", l.SessionID)
}
