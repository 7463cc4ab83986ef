package fx

import (
	"fmt"
	"math"
	"strings"
)

// Quality scales how many particles a recipe emits. It never touches capacities.
type Quality uint8

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
)

func (q Quality) Multiplier() float64 {
	switch q {
	case QualityLow:
		return 0.3
	case QualityMedium:
		return 0.7
	default:
		return 1.0
	}
}

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	}
	return fmt.Sprintf("Quality(%d)", uint8(q))
}

// ParseQuality accepts "low", "medium" or "high" (case-insensitive).
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return QualityLow, nil
	case "medium", "med":
		return QualityMedium, nil
	case "high":
		return QualityHigh, nil
	}
	return QualityHigh, fmt.Errorf("unknown quality level %q", s)
}

// Scale returns floor(count*multiplier), raised to min. The epsilon keeps
// products like 10*0.7 from landing just under an integer.
func (q Quality) Scale(count, min int) int {
	if count <= 0 {
		return 0
	}
	n := int(math.Floor(float64(count)*q.Multiplier() + 1e-9))
	if n < min {
		n = min
	}
	return n
}
