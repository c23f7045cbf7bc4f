// Package params holds the fixed constants of the civil-unrest model.
// Anything a run may tune lives in internal/config; these are the values
// the config falls back to and the ones no run may change.
package params

// ArrestConstant scales the perceived arrest probability:
// P = 1 - exp(-ArrestConstant * cops / (revolting + 1)).
const ArrestConstant = 2.3

// Jail and elimination defaults.
const (
	// JailPeriod is how many ticks an arrested citizen stays immobilized.
	JailPeriod = 30

	// KillThreshold is the times-jailed count beyond which a cop eliminates
	// a citizen instead of arresting it again.
	KillThreshold = 10
)

// RevoltSuppression damps revolt: a qualifying citizen only revolts when a
// uniform draw exceeds this value.
const RevoltSuppression = 0.2

// Vision radii for the Moore neighborhood scans.
const (
	CitizenVision = 1
	CopVision     = 1
)

// MobFactor is the per-radius crowd margin a revolting neighborhood needs
// over nearby cops before it kills one (8 cells per ring, halved).
const MobFactor = 4

// Trade sizes for the per-tick wallet exchange between co-located citizens.
const (
	LargeTrade = 5.0
	SmallTrade = 2.0
)

// BandLimit separates the Middle and Poor status bands by savings and loans.
const BandLimit = 10.0

// PopulationFloor is the live citizen count below which a run stops.
const PopulationFloor = 2
