package remote

import (
	"encoding/json"

	"github.com/jpalmerr/scoreboard/internal/match"
)

// Visibility groups.
const (
	GroupAdmin = "admin"
	GroupGuest = "guest"
)

// Inbound actions.
const (
	ActionRefresh = "refresh"
	ActionEnable  = "enable"
	ActionUpdate  = "update"
	ActionLimits  = "limits"
	ActionSwap    = "swap"
	ActionReset   = "reset"
)

// SideState is one side of the board on the wire.
type SideState struct {
	Color string `json:"color"`
	Score int    `json:"score"`
}

// State is the snapshot pushed to peers.
//
//	{"mode":"RUNNING","lhs":{"color":"red","score":3},"rhs":{"color":"blue","score":1},"group":"guest"}
type State struct {
	Mode  string    `json:"mode"`
	LHS   SideState `json:"lhs"`
	RHS   SideState `json:"rhs"`
	Group string    `json:"group"`
}

// Message is an inbound request. Only the fields its action needs are read.
//
//	{"action":"update","side":"lhs","delta":1}
//	{"action":"limits","limit":15,"max_limit":21}
//	{"action":"enable","password":"admin"}
type Message struct {
	Action   string `json:"action"`
	Password string `json:"password,omitempty"`
	Side     string `json:"side,omitempty"`
	Delta    int    `json:"delta,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	MaxLimit int    `json:"max_limit,omitempty"`
}

func newState(snap match.Snapshot) State {
	return State{
		Mode: snap.Mode.String(),
		LHS:  SideState{Color: snap.LHS.Team.Color(), Score: snap.LHS.Score},
		RHS:  SideState{Color: snap.RHS.Team.Color(), Score: snap.RHS.Score},
	}
}

// encode marshals st as one newline-terminated line.
func encode(st State) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
