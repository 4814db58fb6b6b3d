package flatview

import (
	"errors"
	"fmt"
)

// ErrCycle is returned by Build when the module graph rooted at top
// transitively instantiates itself. spec.md §9 flags the silent-skip
// behavior of a naive DFS as an anomaly and recommends raising instead;
// SPEC_FULL.md §6 adopts that recommendation.
var ErrCycle = errors.New("flatview: module graph contains a cycle")

func cycleError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCycle, fmt.Sprintf(format, args...))
}
