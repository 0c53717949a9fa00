package ops

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// UpdateSettings replaces the settings wholesale.
func UpdateSettings(s domain.Snapshot, next domain.Settings) (Result, error) {
	if math.IsNaN(next.XPToEuroRate) || next.XPToEuroRate < 0 {
		return Result{}, fmt.Errorf("%w: xp rate must be non-negative", ErrInvalidSettings)
	}
	if next.SpendGateThreshold < 0 {
		return Result{}, fmt.Errorf("%w: gate threshold must be non-negative", ErrInvalidSettings)
	}

	r := begin(s)
	mini := maps.Clone(next.DefaultMiniTasksByCategory)
	for k, v := range mini {
		mini[k] = slices.Clone(v)
	}
	if mini == nil {
		mini = map[string][]string{}
	}
	next.DefaultMiniTasksByCategory = mini
	r.Snapshot.Settings = next
	r.notice("Settings saved")
	return *r, nil
}
