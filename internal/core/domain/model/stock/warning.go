package stock

// Low stock thresholds, in remaining units after a sale.
const (
	criticalThreshold = 3
	lowThreshold      = 10
)

// Warning grades how urgently an item needs restocking once a sale goes
// through. An order that would drive stock negative is rejected outright and
// never reaches this grading.
type Warning int

const (
	// WarningNone means stock is comfortable.
	WarningNone Warning = iota

	// WarningLow means ten or fewer units would remain.
	WarningLow

	// WarningCritical means three or fewer units would remain.
	WarningCritical
)

// WarningForRemaining grades the stock level left after a sale.
func WarningForRemaining(remaining int) Warning {
	switch {
	case remaining <= criticalThreshold:
		return WarningCritical
	case remaining <= lowThreshold:
		return WarningLow
	default:
		return WarningNone
	}
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	switch w {
	case WarningLow:
		return "low"
	case WarningCritical:
		return "critical"
	default:
		return "ok"
	}
}
