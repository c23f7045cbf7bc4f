package agents

import (
	"fmt"

	"github.com/talgya/unrest/internal/economy"
	"github.com/talgya/unrest/internal/entropy"
	"github.com/talgya/unrest/internal/world"
)

// Population resolves agent ids and collects removal requests during a tick.
// Queued agents stay on the grid until the tick ends.
type Population interface {
	Lookup(id AgentID) Agent
	QueueKill(id AgentID)
}

// Context is the model state an agent reads and writes while stepping.
// The world builds one per tick; nothing here is looked up ambiently.
type Context struct {
	Grid       *world.Grid
	Rand       *entropy.Source
	Bank       *economy.Bank
	Population Population

	Legitimacy      float64
	MeanSavings     float64 // Mean citizen savings at tick start, 0 with no citizens
	ActiveThreshold float64
	RichThreshold   float64
	IncludeWealth   bool

	CitizenVision int
	CopVision     int
	JailPeriod    int
	KillThreshold int
}

// neighborhood is one agent's classified view of the cells around it.
type neighborhood struct {
	citizens  []*Citizen
	cops      []*Cop
	revolting []*Citizen
}

// scan classifies the occupants of the Moore neighborhood around id.
func (ctx *Context) scan(id AgentID, radius int) (neighborhood, world.Coord, error) {
	var n neighborhood
	pos, ok := ctx.Grid.Position(id)
	if !ok {
		return n, pos, fmt.Errorf("agent %d: %w", id, world.ErrNotPlaced)
	}
	for _, oid := range ctx.Grid.Neighbors(pos, radius, false) {
		switch a := ctx.Population.Lookup(oid).(type) {
		case *Citizen:
			n.citizens = append(n.citizens, a)
			if a.State == StateRevolt {
				n.revolting = append(n.revolting, a)
			}
		case *Cop:
			n.cops = append(n.cops, a)
		}
	}
	return n, pos, nil
}
