// Package agents provides the citizen and cop agents and their per-tick rules.
// Agents form a closed variant: Citizen and Cop are the only implementations
// of Agent, and callers dispatch on the concrete type, never on a tag string.
package agents

import (
	"github.com/talgya/unrest/internal/world"
)

// AgentID is a unique identifier for an agent. It doubles as the grid occupant id.
type AgentID = world.OccupantID

// Alignment says which side an agent is on.
type Alignment uint8

const (
	AlignmentCitizen Alignment = iota
	AlignmentCop
)

func (a Alignment) String() string {
	switch a {
	case AlignmentCitizen:
		return "Citizen"
	case AlignmentCop:
		return "Cop"
	}
	return "Unknown"
}

// State is a citizen's behavioural state. Exactly one holds at a time.
type State uint8

const (
	StateCalm State = iota
	StateRevolt
	StateJail
)

func (s State) String() string {
	switch s {
	case StateCalm:
		return "Calm"
	case StateRevolt:
		return "Revolt"
	case StateJail:
		return "Jail"
	}
	return "Unknown"
}

// Status is a citizen's wealth band, derived from savings and loans.
type Status uint8

const (
	StatusNone Status = iota
	StatusRich
	StatusMiddle
	StatusPoor
)

func (s Status) String() string {
	switch s {
	case StatusRich:
		return "Rich"
	case StatusMiddle:
		return "Middle"
	case StatusPoor:
		return "Poor"
	}
	return "None"
}

// Agent is anything the world steps once per tick.
type Agent interface {
	ID() AgentID
	Alignment() Alignment
	Step(ctx *Context) error

	sealed()
}
