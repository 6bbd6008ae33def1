package receipt

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource supplies receipt identifiers. Injectable so tests get
// deterministic, collision-free IDs.
type IDSource interface {
	NextID() string
}

// UUIDSource issues time-ordered (version 7) UUIDs, keeping IDs
// monotonically increasing across a process without a shared counter.
type UUIDSource struct{}

func (UUIDSource) NextID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// v7 generation only fails when the entropy source does; fall back
		// to random rather than propagate an error through every parse.
		return uuid.NewString()
	}
	return id.String()
}

// CounterSource issues sequential IDs ("r-1", "r-2", ...) for tests.
type CounterSource struct {
	n atomic.Uint64
}

func (c *CounterSource) NextID() string {
	return fmt.Sprintf("r-%d", c.n.Add(1))
}
