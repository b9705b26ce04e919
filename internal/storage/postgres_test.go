package storage

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgStoreGet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT value FROM kv_entries").
		WithArgs("services").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

	store := NewPgStore(mock)
	got, err := store.Get(context.Background(), "services")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgStoreGetAbsentKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT value FROM kv_entries").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	store := NewPgStore(mock)
	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgStoreSet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("last_booking", []byte(`{"id":"apt_1"}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPgStore(mock)
	require.NoError(t, store.Set(context.Background(), "last_booking", []byte(`{"id":"apt_1"}`)))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgStoreDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM kv_entries").
		WithArgs("current_user").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	store := NewPgStore(mock)
	require.NoError(t, store.Delete(context.Background(), "current_user"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgStoreEnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_entries").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	store := NewPgStore(mock)
	require.NoError(t, store.EnsureSchema(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
