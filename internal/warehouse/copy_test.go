// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package warehouse

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/marketlens/internal/database"
)

// fakeTx records the statements and copy issued on a pgx transaction.
type fakeTx struct {
	pgx.Tx

	execs      []string
	execErr    map[string]error
	copyTable  pgx.Identifier
	copyCols   []string
	copied     [][]any
	copyErr    error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	if err, ok := f.execErr[sql]; ok {
		return pgconn.CommandTag{}, err
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeTx) CopyFrom(_ context.Context, table pgx.Identifier, cols []string, src pgx.CopyFromSource) (int64, error) {
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	f.copyTable = table
	f.copyCols = cols
	for src.Next() {
		vals, err := src.Values()
		if err != nil {
			return 0, err
		}
		f.copied = append(f.copied, append([]any(nil), vals...))
	}
	return int64(len(f.copied)), src.Err()
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakeStarter struct {
	tx  *fakeTx
	err error
}

func (s *fakeStarter) Begin(context.Context) (pgx.Tx, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tx, nil
}

var ordersColumns = []database.Column{
	{Name: "order_id", Type: "VARCHAR"},
	{Name: "order_purchase_timestamp", Type: "TIMESTAMP"},
	{Name: "price", Type: "DOUBLE"},
}

func TestCreateTableSQL(t *testing.T) {
	got := CreateTableSQL("staging", "orders", ordersColumns)
	want := `CREATE TABLE "staging"."orders" ("order_id" text, "order_purchase_timestamp" timestamp, "price" double precision)`
	assert.Equal(t, want, got)
}

func TestReplaceTable(t *testing.T) {
	tx := &fakeTx{}
	src := pgx.CopyFromRows([][]any{{"o1", nil, 1.0}, {"o2", nil, 2.0}})

	n, err := replaceTable(context.Background(), &fakeStarter{tx: tx}, "staging", "orders", ordersColumns, src)
	require.NoError(t, err)

	assert.Equal(t, int64(2), n)
	assert.Equal(t, []string{
		`DROP TABLE IF EXISTS "staging"."orders"`,
		CreateTableSQL("staging", "orders", ordersColumns),
	}, tx.execs)
	assert.Equal(t, pgx.Identifier{"staging", "orders"}, tx.copyTable)
	assert.Equal(t, []string{"order_id", "order_purchase_timestamp", "price"}, tx.copyCols)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestReplaceTable_Failures(t *testing.T) {
	boom := errors.New("boom")
	drop := `DROP TABLE IF EXISTS "staging"."orders"`
	create := CreateTableSQL("staging", "orders", ordersColumns)

	tests := []struct {
		name    string
		starter *fakeStarter
	}{
		{"begin", &fakeStarter{err: boom}},
		{"drop", &fakeStarter{tx: &fakeTx{execErr: map[string]error{drop: boom}}}},
		{"create", &fakeStarter{tx: &fakeTx{execErr: map[string]error{create: boom}}}},
		{"copy", &fakeStarter{tx: &fakeTx{copyErr: boom}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := replaceTable(context.Background(), tt.starter, "staging", "orders", ordersColumns, pgx.CopyFromRows(nil))
			require.ErrorIs(t, err, boom)
			if tt.starter.tx != nil {
				assert.False(t, tt.starter.tx.committed)
				assert.True(t, tt.starter.tx.rolledBack)
			}
		})
	}
}

func TestReplaceTable_NoColumns(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = New(db).ReplaceTable(context.Background(), "staging", "orders", nil, pgx.CopyFromRows(nil))
	assert.Error(t, err)
}

func TestReplaceTable_RequiresPgxDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = New(db).ReplaceTable(context.Background(), "staging", "orders", ordersColumns, pgx.CopyFromRows(nil))
	assert.ErrorIs(t, err, ErrCopyUnsupported)
}

func TestRowSource(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"order_id", "status", "price"}).
			AddRow("o1", []byte("delivered"), int64(10)).
			AddRow("o2", nil, nil),
	)

	rows, err := db.Query("SELECT * FROM orders")
	require.NoError(t, err)
	defer rows.Close()

	cols := []database.Column{
		{Name: "order_id", Type: "VARCHAR"},
		{Name: "status", Type: "VARCHAR"},
		{Name: "price", Type: "DOUBLE"},
	}
	tx := &fakeTx{}
	n, err := replaceTable(context.Background(), &fakeStarter{tx: tx}, "staging", "orders", cols, NewRowSource(rows, cols))
	require.NoError(t, err)

	assert.Equal(t, int64(2), n)
	assert.Equal(t, [][]any{
		{"o1", "delivered", float64(10)},
		{"o2", nil, nil},
	}, tx.copied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRowSource_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"a", "b"}).AddRow("x", "y"))

	rows, err := db.Query("SELECT a, b")
	require.NoError(t, err)
	defer rows.Close()

	// One declared column against two returned columns makes Scan fail.
	src := NewRowSource(rows, []database.Column{{Name: "a", Type: "VARCHAR"}})
	require.True(t, src.Next())
	_, err = src.Values()
	require.Error(t, err)
	assert.False(t, src.Next())
	assert.Error(t, src.Err())
}
