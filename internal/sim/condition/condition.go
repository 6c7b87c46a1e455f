// Package condition defines the trigger predicates that gate intervention
// commands.
//
// A condition describes when the simulation engine should fire a command;
// evaluating it against simulation state is the engine's job, not this
// repository's. The variant set is closed: every condition is one of the
// concrete types below, and code can switch over Kind exhaustively.
package condition

import (
	"time"

	"github.com/louisbranch/cordon/internal/sim/simtime"
)

// Kind tags a condition variant.
type Kind int

const (
	KindTimePoint Kind = iota
	KindTimePeriod
	KindStatisticalFamily
	KindStatisticalRatio
	KindStatisticalRatioRole
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTimePoint:
		return "time_point"
	case KindTimePeriod:
		return "time_period"
	case KindStatisticalFamily:
		return "statistical_family"
	case KindStatisticalRatio:
		return "statistical_ratio"
	case KindStatisticalRatioRole:
		return "statistical_ratio_role"
	default:
		return "unknown"
	}
}

// Supported reports whether the kind can be decoded and serialized today.
// The statistical kinds are declared so callers can recognize them in
// vectors and report precise capability gaps, but they have no payload
// representation yet.
func (k Kind) Supported() bool {
	switch k {
	case KindTimePoint, KindTimePeriod:
		return true
	default:
		return false
	}
}

// ParseKind maps a wire name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "time_point":
		return KindTimePoint, true
	case "time_period":
		return KindTimePeriod, true
	case "statistical_family":
		return KindStatisticalFamily, true
	case "statistical_ratio":
		return KindStatisticalRatio, true
	case "statistical_ratio_role":
		return KindStatisticalRatioRole, true
	default:
		return 0, false
	}
}

// Condition is a trigger predicate attached to a command. The interface is
// sealed; the concrete types in this package are the only implementations.
type Condition interface {
	Kind() Kind
	isCondition()
}

// TimePoint triggers once, when the simulation clock reaches Deadline.
type TimePoint struct {
	Deadline simtime.Time
}

func (TimePoint) Kind() Kind { return KindTimePoint }

func (TimePoint) isCondition() {}

// TimePeriod triggers repeatedly, once every Period of simulation time.
type TimePeriod struct {
	Period time.Duration
}

func (TimePeriod) Kind() Kind { return KindTimePeriod }

func (TimePeriod) isCondition() {}

var (
	_ Condition = TimePoint{}
	_ Condition = TimePeriod{}
)
