package engine

import (
	"github.com/talgya/unrest/internal/agents"
)

// Stats is the per-tick statistics surface read by reporting consumers.
// Band means are 0 for an empty band.
type Stats struct {
	Tick uint64 `db:"tick" json:"tick"`

	Citizens int `db:"citizens" json:"citizens"`
	Cops     int `db:"cops" json:"cops"`
	Calm     int `db:"calm" json:"calm"`
	Revolt   int `db:"revolt" json:"revolt"`
	Jail     int `db:"jail" json:"jail"`

	Rich         int `db:"rich" json:"rich"`
	Middle       int `db:"middle" json:"middle"`
	Poor         int `db:"poor" json:"poor"`
	RichActive   int `db:"rich_active" json:"rich_active"`
	MiddleActive int `db:"middle_active" json:"middle_active"`
	PoorActive   int `db:"poor_active" json:"poor_active"`

	// Grievance sums. With the economy off every citizen counts as Poor.
	RichGrievance   float64 `db:"rich_grievance" json:"rich_grievance"`
	MiddleGrievance float64 `db:"middle_grievance" json:"middle_grievance"`
	PoorGrievance   float64 `db:"poor_grievance" json:"poor_grievance"`

	RichWealth       float64 `db:"rich_wealth" json:"rich_wealth"`
	MiddleWealth     float64 `db:"middle_wealth" json:"middle_wealth"`
	PoorWealth       float64 `db:"poor_wealth" json:"poor_wealth"`
	RichConfidence   float64 `db:"rich_confidence" json:"rich_confidence"`
	MiddleConfidence float64 `db:"middle_confidence" json:"middle_confidence"`
	PoorConfidence   float64 `db:"poor_confidence" json:"poor_confidence"`
	RichHardship     float64 `db:"rich_hardship" json:"rich_hardship"`
	MiddleHardship   float64 `db:"middle_hardship" json:"middle_hardship"`
	PoorHardship     float64 `db:"poor_hardship" json:"poor_hardship"`

	Legitimacy float64 `db:"legitimacy" json:"legitimacy"` // Percent

	// Raw state counts, reported only with the economy off.
	WOCalm   int `db:"wo_calm" json:"wo_calm"`
	WORevolt int `db:"wo_revolt" json:"wo_revolt"`
	WOJail   int `db:"wo_jail" json:"wo_jail"`
}

type bandAccum struct {
	count, active                       int
	grievance, wealth, confidence, hard float64
}

func (b *bandAccum) add(c *agents.Citizen) {
	b.count++
	if c.State == agents.StateRevolt {
		b.active++
	}
	b.grievance += c.Grievance
	b.wealth += c.Wealth
	b.confidence += c.Confidence
	b.hard += c.Hardship
}

func (b *bandAccum) mean(sum float64) float64 {
	if b.count == 0 {
		return 0
	}
	return sum / float64(b.count)
}

// collectStats counts the population and aggregates each wealth band.
func (w *World) collectStats() Stats {
	st := Stats{
		Tick:       w.LastTick,
		Legitimacy: w.Legitimacy * 100,
	}
	var rich, middle, poor bandAccum
	allGrievance := 0.0

	for _, a := range w.Agents {
		c, ok := a.(*agents.Citizen)
		if !ok {
			st.Cops++
			continue
		}
		st.Citizens++
		allGrievance += c.Grievance
		switch c.State {
		case agents.StateCalm:
			st.Calm++
		case agents.StateRevolt:
			st.Revolt++
		case agents.StateJail:
			st.Jail++
		}
		switch c.Status {
		case agents.StatusRich:
			rich.add(c)
		case agents.StatusMiddle:
			middle.add(c)
		case agents.StatusPoor:
			poor.add(c)
		}
	}

	st.Rich, st.RichActive = rich.count, rich.active
	st.Middle, st.MiddleActive = middle.count, middle.active
	st.Poor, st.PoorActive = poor.count, poor.active

	st.RichGrievance = rich.grievance
	st.MiddleGrievance = middle.grievance
	st.PoorGrievance = poor.grievance

	st.RichWealth = rich.mean(rich.wealth)
	st.MiddleWealth = middle.mean(middle.wealth)
	st.PoorWealth = poor.mean(poor.wealth)
	st.RichConfidence = rich.mean(rich.confidence)
	st.MiddleConfidence = middle.mean(middle.confidence)
	st.PoorConfidence = poor.mean(poor.confidence)
	st.RichHardship = rich.mean(rich.hard)
	st.MiddleHardship = middle.mean(middle.hard)
	st.PoorHardship = poor.mean(poor.hard)

	if !w.cfg.IncludeWealth {
		st.PoorGrievance = allGrievance
		st.WOCalm, st.WORevolt, st.WOJail = st.Calm, st.Revolt, st.Jail
	}
	return st
}
