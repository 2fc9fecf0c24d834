package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiqriashiddiqi/user-registry/internal/domain/apperr"
)

func TestGenerateEmbedsMicrosecondTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	g := &IDGenerator{now: func() time.Time { return at }}

	id := g.Generate()
	assert.Equal(t, at.UnixMicro(), id>>randBits)
	assert.Less(t, id&(1<<randBits-1), int64(1<<randBits))
}

func TestGenerateOrderedAcrossMicroseconds(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	early := &IDGenerator{now: func() time.Time { return base }}
	late := &IDGenerator{now: func() time.Time { return base.Add(time.Microsecond) }}

	assert.Less(t, early.Generate(), late.Generate())
}

// existsQuerier scripts the EXISTS answers the reserve loop sees, one per call.
type existsQuerier struct {
	answers []bool
	err     error
	calls   int
}

type existsRow struct {
	exists bool
	err    error
}

func (r existsRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*bool)) = r.exists
	return nil
}

func (q *existsQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (q *existsQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (q *existsQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if q.err != nil {
		return existsRow{err: q.err}
	}
	exists := q.answers[q.calls]
	q.calls++
	return existsRow{exists: exists}
}

func TestReserveReturnsFirstFreeIdentifier(t *testing.T) {
	q := &existsQuerier{answers: []bool{true, true, false}}
	g := NewIDGenerator()

	id, err := g.Reserve(context.Background(), q)
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, 3, q.calls)
}

func TestReserveExhaustsAfterMaxAttempts(t *testing.T) {
	answers := make([]bool, maxReserveAttempts)
	for i := range answers {
		answers[i] = true
	}
	q := &existsQuerier{answers: answers}
	g := NewIDGenerator()

	_, err := g.Reserve(context.Background(), q)
	assert.ErrorIs(t, err, apperr.ErrIdentifierExhausted)
	assert.Equal(t, maxReserveAttempts, q.calls)
}

func TestReservePropagatesStorageErrors(t *testing.T) {
	q := &existsQuerier{err: errors.New("connection reset")}
	g := NewIDGenerator()

	_, err := g.Reserve(context.Background(), q)
	assert.ErrorIs(t, err, apperr.ErrStorage)
}
