// Cop behaviour: patrol into vacant cells, eliminate repeat offenders,
// and arrest revolting citizens.
package agents

import (
	"github.com/talgya/unrest/internal/entropy"
	"github.com/talgya/unrest/internal/world"
)

// Cop enforces order. It carries no state beyond its grid position.
type Cop struct {
	id AgentID
}

// NewCop creates a cop.
func NewCop(id AgentID) *Cop {
	return &Cop{id: id}
}

func (p *Cop) ID() AgentID          { return p.id }
func (p *Cop) Alignment() Alignment { return AlignmentCop }
func (p *Cop) sealed()              {}

// Step scans, moves into a vacant neighboring cell, then enforces against
// the citizens seen before the move.
func (p *Cop) Step(ctx *Context) error {
	seen, pos, err := ctx.scan(p.id, ctx.CopVision)
	if err != nil {
		return err
	}

	var vacant []world.Coord
	for _, c := range ctx.Grid.Neighborhood(pos, ctx.CopVision, false) {
		if ctx.Grid.IsEmpty(c) {
			vacant = append(vacant, c)
		}
	}
	if len(vacant) > 0 {
		if err := ctx.Grid.Move(p.id, entropy.Pick(ctx.Rand, vacant)); err != nil {
			return err
		}
	}

	p.eliminateRepeatOffenders(ctx, seen)
	p.arrest(ctx, seen)
	return nil
}

// eliminateRepeatOffenders queues every nearby citizen jailed more often
// than the kill threshold.
func (p *Cop) eliminateRepeatOffenders(ctx *Context, seen neighborhood) {
	for _, c := range seen.citizens {
		if c.TimesJailed > ctx.KillThreshold {
			ctx.Population.QueueKill(c.ID())
		}
	}
}

// arrest jails one random revolting neighbor with probability 1 − legitimacy.
func (p *Cop) arrest(ctx *Context, seen neighborhood) {
	if ctx.Rand.Float() <= ctx.Legitimacy {
		return
	}
	if len(seen.revolting) == 0 {
		return
	}
	entropy.Pick(ctx.Rand, seen.revolting).Arrest()
}
