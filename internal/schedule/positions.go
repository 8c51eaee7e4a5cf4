package schedule

import (
	"fmt"
	"sort"

	"github.com/zoraaver/wlogger/internal/domain"
)

// NormalizePositions sorts weeks by declared position and rewrites the
// positions so each week starts right after the previous week's repeats:
// position[0] = 1, position[i+1] = position[i] + repeat[i] + 1.
func NormalizePositions(weeks []domain.Week) {
	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].Position < weeks[j].Position
	})
	next := 1
	for i := range weeks {
		weeks[i].Position = next
		next += weeks[i].Repeat + 1
	}
}

// ValidatePositions checks the declared positions without modifying weeks.
// The reported field uses the week's index in the given slice.
func ValidatePositions(weeks []domain.Week) error {
	order := make([]int, len(weeks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return weeks[order[a]].Position < weeks[order[b]].Position
	})

	expected := 1
	for _, i := range order {
		if weeks[i].Position != expected {
			return domain.NewValidationError(
				fmt.Sprintf("weeks.%d.position", i),
				fmt.Sprintf("Invalid position, expected %d", expected),
			)
		}
		expected += weeks[i].Repeat + 1
	}
	return nil
}
