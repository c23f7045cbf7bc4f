package engine

import (
	"fmt"
	"math"

	"github.com/talgya/unrest/internal/agents"
	"github.com/talgya/unrest/internal/world"
)

// AgentView is the read-only projection a renderer consumes.
type AgentView struct {
	ID         agents.AgentID `json:"id"`
	Alignment  string         `json:"alignment"`
	Status     string         `json:"status,omitempty"`
	State      string         `json:"state,omitempty"`
	Position   world.Coord    `json:"position"`
	Confidence float64        `json:"confidence"`
	Grievance  float64        `json:"grievance"`
	Label      string         `json:"label"`
}

// Snapshot bundles everything an external consumer reads after a tick.
type Snapshot struct {
	RunID      string      `json:"run_id"`
	Tick       uint64      `json:"tick"`
	Running    bool        `json:"running"`
	Legitimacy float64     `json:"legitimacy"`
	Killed     KillCounts  `json:"killed"`
	Stats      Stats       `json:"stats"`
	Agents     []AgentView `json:"agents"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Views projects every live agent in stepping order.
func (w *World) Views() []AgentView {
	out := make([]AgentView, 0, len(w.Agents))
	for _, a := range w.Agents {
		pos, _ := w.Grid.Position(a.ID())
		v := AgentView{
			ID:        a.ID(),
			Alignment: a.Alignment().String(),
			Position:  pos,
		}
		switch a := a.(type) {
		case *agents.Citizen:
			v.Status = a.Status.String()
			v.State = a.State.String()
			v.Confidence = round2(a.Confidence)
			v.Grievance = round2(a.Grievance)
			v.Label = fmt.Sprintf("%s | %.2f | %.2f", v.Status, v.Confidence, v.Grievance)
		case *agents.Cop:
			v.Label = fmt.Sprintf("Cop %d", a.ID())
		}
		out = append(out, v)
	}
	return out
}

// Snapshot returns the current read-only state of the world.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		RunID:      w.RunID.String(),
		Tick:       w.LastTick,
		Running:    w.running,
		Legitimacy: w.Legitimacy,
		Killed:     w.Killed,
		Stats:      w.Stats,
		Agents:     w.Views(),
	}
}
