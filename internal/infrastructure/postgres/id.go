package postgres

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/fiqriashiddiqi/user-registry/internal/domain/apperr"
)

// randBits is the width of the random suffix appended to the timestamp.
// 12 bits keeps ids sortable by creation microsecond while making two
// generators colliding within the same microsecond a 1-in-4096 event.
const randBits = 12

// maxReserveAttempts bounds the generate/check loop; running out means the
// enclosing write must abort.
const maxReserveAttempts = 10

// IDGenerator produces candidate 64-bit identifiers: current time at
// microsecond granularity shifted left, ORed with a small random offset.
// Values are probabilistically unique and roughly ordered by creation time;
// the users.id primary key is the last line of defense.
type IDGenerator struct {
	now func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Generate returns one candidate identifier without consulting the store.
func (g *IDGenerator) Generate() int64 {
	micros := g.now().UnixMicro()
	return micros<<randBits | int64(rand.Uint64()&(1<<randBits-1))
}

// Reserve returns the first generated identifier with no live row, checked
// through q so that inside a transaction the existence check and the
// subsequent insert cannot be split by a concurrent writer. Fails with
// apperr.ErrIdentifierExhausted after maxReserveAttempts candidates.
func (g *IDGenerator) Reserve(ctx context.Context, q querier) (int64, error) {
	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		id := g.Generate()
		var exists bool
		err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return 0, mapError(err)
		}
		if !exists {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: no free identifier in %d attempts", apperr.ErrIdentifierExhausted, maxReserveAttempts)
}
