// Citizen behaviour: grievance and confidence, the Calm/Revolt/Jail state
// machine, the mob rule, and the economic sub-step.
package agents

import (
	"fmt"
	"math"

	"github.com/talgya/unrest/internal/economy"
	"github.com/talgya/unrest/internal/entropy"
	"github.com/talgya/unrest/internal/params"
)

// Citizen is a member of the population who may revolt.
type Citizen struct {
	id AgentID

	Status   Status `json:"status"`
	State    State  `json:"state"`
	Movement bool   `json:"movement"`

	Hardship          float64 `json:"hardship"`      // 0.0–1.0
	RiskAversion      float64 `json:"risk_aversion"` // 0.0–1.0
	Grievance         float64 `json:"grievance"`
	Confidence        float64 `json:"confidence"` // May go negative
	NetRisk           float64 `json:"net_risk"`
	ArrestProbability float64 `json:"arrest_probability"`

	JailTime    int `json:"jail_time"`    // Ticks served in the current sentence
	TimesJailed int `json:"times_jailed"` // Completed sentences

	Account economy.Account `json:"account"`
	Wealth  float64         `json:"wealth"` // Savings·legitimacy − loans

	// Last neighborhood scan; kept while jailed.
	seen neighborhood
}

// NewCitizen creates a calm, mobile citizen.
func NewCitizen(id AgentID, hardship, riskAversion, wallet float64) *Citizen {
	return &Citizen{
		id:           id,
		Status:       StatusNone,
		State:        StateCalm,
		Movement:     true,
		Hardship:     hardship,
		RiskAversion: riskAversion,
		Account:      economy.Account{Wallet: wallet},
	}
}

func (c *Citizen) ID() AgentID          { return c.id }
func (c *Citizen) Alignment() Alignment { return AlignmentCitizen }
func (c *Citizen) sealed()              {}

// Arrest jails the citizen and pins it in place.
func (c *Citizen) Arrest() {
	c.State = StateJail
	c.Movement = false
}

// Step runs one tick for the citizen.
// A mobile citizen scans, re-decides, walks and may join a mob kill; the
// jail timer always runs; the economy runs for anyone not in jail; and
// confidence is recomputed last from this tick's wealth.
func (c *Citizen) Step(ctx *Context) error {
	if c.Movement {
		seen, _, err := ctx.scan(c.id, ctx.CitizenVision)
		if err != nil {
			return err
		}
		c.seen = seen
		c.updateState(ctx)
		if err := c.randomMove(ctx); err != nil {
			return err
		}
		c.mobKillsCop(ctx)
	}

	c.updateJailTime(ctx)

	if ctx.IncludeWealth && c.State != StateJail {
		if err := c.doBusiness(ctx); err != nil {
			return err
		}
		c.Account.BalanceBooks(ctx.Bank)
		c.Wealth = c.Account.Wealth(ctx.Legitimacy)
		ctx.Bank.Balance(ctx.Legitimacy)
		c.updateStatus(ctx)
	}

	c.measureConfidence(ctx)
	return nil
}

// updateState applies the revolt rule. The suppression draw is only taken
// when confidence already clears the threshold.
func (c *Citizen) updateState(ctx *Context) {
	if c.Confidence > ctx.ActiveThreshold && ctx.Rand.Float() > params.RevoltSuppression {
		c.State = StateRevolt
	} else {
		c.State = StateCalm
	}
}

// randomMove steps to any cell of the radius-1 neighborhood, centre
// included, whether or not it is occupied.
func (c *Citizen) randomMove(ctx *Context) error {
	pos, ok := ctx.Grid.Position(c.id)
	if !ok {
		return fmt.Errorf("citizen %d has no position", c.id)
	}
	next := entropy.Pick(ctx.Rand, ctx.Grid.Neighborhood(pos, 1, true))
	return ctx.Grid.Move(c.id, next)
}

// mobKillsCop queues one adjacent cop for death when the revolting crowd
// outnumbers the nearby cops by the mob margin.
func (c *Citizen) mobKillsCop(ctx *Context) {
	if c.State != StateRevolt || len(c.seen.cops) == 0 {
		return
	}
	crowd := len(c.seen.revolting) + 1
	if crowd-len(c.seen.cops) >= params.MobFactor*ctx.CitizenVision {
		victim := entropy.Pick(ctx.Rand, c.seen.cops)
		ctx.Population.QueueKill(victim.ID())
	}
}

// updateJailTime serves one tick of a sentence and releases the citizen
// once the sentence exceeds the jail period.
func (c *Citizen) updateJailTime(ctx *Context) {
	if c.State != StateJail {
		return
	}
	c.JailTime++
	if c.JailTime > ctx.JailPeriod {
		c.Movement = true
		c.updateState(ctx)
		c.JailTime = 0
		c.TimesJailed++
	}
}

// doBusiness may trade with one other citizen sharing the cell.
func (c *Citizen) doBusiness(ctx *Context) error {
	acct := &c.Account
	if acct.Savings <= 0 && acct.Wallet <= 0 && ctx.Bank.ToLoan <= 0 {
		return nil
	}
	pos, ok := ctx.Grid.Position(c.id)
	if !ok {
		return fmt.Errorf("citizen %d has no position", c.id)
	}

	var partners []*Citizen
	for _, id := range ctx.Grid.Cell(pos) {
		if other, ok := ctx.Population.Lookup(id).(*Citizen); ok && other != c {
			partners = append(partners, other)
		}
	}
	if len(partners) == 0 {
		return nil
	}

	partner := entropy.Pick(ctx.Rand, partners)
	if ctx.Rand.Coin() {
		amount := params.SmallTrade
		if ctx.Rand.Coin() {
			amount = params.LargeTrade
		}
		acct.Pay(&partner.Account, amount)
	}
	return nil
}

// updateStatus assigns the wealth band. Checks run Rich, Middle, Poor and a
// later match overwrites an earlier one.
func (c *Citizen) updateStatus(ctx *Context) {
	acct := c.Account
	if acct.Savings > ctx.RichThreshold {
		c.Status = StatusRich
	}
	if acct.Savings < params.BandLimit && acct.Loans < params.BandLimit {
		c.Status = StatusMiddle
	}
	if acct.Loans > params.BandLimit {
		c.Status = StatusPoor
	}
}

// measureConfidence recomputes hardship (economy on), grievance, arrest
// risk and confidence.
func (c *Citizen) measureConfidence(ctx *Context) {
	if ctx.IncludeWealth {
		if ctx.MeanSavings == 0 {
			c.Hardship = 0
		} else {
			c.Hardship = 1 - sigmoid(c.Wealth/ctx.MeanSavings)
		}
	}

	c.Grievance = c.Hardship * (1 - ctx.Legitimacy)

	cops := float64(len(c.seen.cops))
	crowd := float64(len(c.seen.revolting) + 1)
	c.ArrestProbability = 1 - math.Exp(-params.ArrestConstant*cops/crowd)

	// Jailed citizens see their risk inflated by the full jail period.
	exposure := 1.0
	if c.State == StateJail {
		exposure = float64(ctx.JailPeriod)
	}
	c.NetRisk = c.ArrestProbability * c.RiskAversion * exposure
	c.Confidence = c.Grievance - c.NetRisk
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
