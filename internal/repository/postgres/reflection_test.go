package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
)

type rowFunc func(dest ...interface{}) error

func (f rowFunc) Scan(dest ...interface{}) error { return f(dest...) }

// insertRecorder answers QueryRow with rows built by next and records the
// entry_id argument of every insert.
type insertRecorder struct {
	entryIDs []*string
	next     func(entryID *string) pgx.Row
}

func (d *insertRecorder) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unexpected Exec")
}

func (d *insertRecorder) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (d *insertRecorder) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	entryID := args[1].(*string)
	d.entryIDs = append(d.entryIDs, entryID)
	return d.next(entryID)
}

var _ repositories.DBTX = (*insertRecorder)(nil)

// missingEntry fails inserts that reference an entry and stores the rest
func missingEntry(created time.Time) func(*string) pgx.Row {
	return func(entryID *string) pgx.Row {
		return rowFunc(func(dest ...interface{}) error {
			if entryID != nil {
				return &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
			}
			*dest[0].(*string) = "r1"
			*dest[1].(*time.Time) = created
			return nil
		})
	}
}

// stubTx marks a context as transactional; its methods are never called
type stubTx struct{ pgx.Tx }

func newTestReflectionRepo() *PostgresReflectionRepository {
	return &PostgresReflectionRepository{
		tables: NewTableNames("test_"),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestReflectionCreate_DetachesWhenEntryIsGone(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	db := &insertRecorder{next: missingEntry(created)}
	entryID := "e1"
	reflection := &models.SurpriseReflection{
		UserID:         "u1",
		EntryID:        &entryID,
		ReflectionType: models.ReflectionMirror,
		Content:        "I notice...",
	}

	err := newTestReflectionRepo().create(context.Background(), db, reflection)
	require.NoError(t, err)

	require.Len(t, db.entryIDs, 2)
	assert.Equal(t, "e1", *db.entryIDs[0])
	assert.Nil(t, db.entryIDs[1])
	assert.Nil(t, reflection.EntryID)
	assert.Equal(t, "r1", reflection.ID)
	assert.Equal(t, created, reflection.CreatedAt)
	assert.NotNil(t, reflection.Context)
}

func TestReflectionCreate_OtherFailuresAreReturned(t *testing.T) {
	boom := &pgconn.PgError{Code: "57014", Message: "canceling statement"}
	db := &insertRecorder{next: func(*string) pgx.Row {
		return rowFunc(func(...interface{}) error { return boom })
	}}
	entryID := "e1"

	err := newTestReflectionRepo().create(context.Background(), db, &models.SurpriseReflection{UserID: "u1", EntryID: &entryID})
	require.ErrorIs(t, err, boom)
	assert.Len(t, db.entryIDs, 1)
}

func TestReflectionCreate_NoRetryInsideTransaction(t *testing.T) {
	db := &insertRecorder{next: missingEntry(time.Now())}
	entryID := "e1"
	reflection := &models.SurpriseReflection{UserID: "u1", EntryID: &entryID}
	ctx := repositories.SetTx(context.Background(), stubTx{})

	err := newTestReflectionRepo().create(ctx, db, reflection)
	require.Error(t, err)
	assert.True(t, IsPgForeignKeyError(err))
	assert.Len(t, db.entryIDs, 1)
	assert.Equal(t, &entryID, reflection.EntryID)
}
