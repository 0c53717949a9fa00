package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderGate renders spend gate progress like [███░░] 3/5. The bar turns
// green once the threshold is reached.
func RenderGate(done, threshold int) string {
	if threshold <= 0 {
		return StyleGreen.Render("open")
	}
	filled := min(max(done, 0), threshold)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, threshold-filled)

	style := StyleYellow
	switch {
	case done >= threshold:
		style = StyleGreen
	case done == 0:
		style = StyleRed
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), done, threshold)
}
