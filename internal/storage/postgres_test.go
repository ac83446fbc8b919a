package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"restaurant-storefront/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgresKV(t *testing.T) (*storage.PostgresKV, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresKV(db), mock
}

func TestPostgresKV_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      string
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM kv_store").
					WithArgs("db_menu").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))
			},
			want: `[]`,
		},
		{
			name: "absent",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM kv_store").
					WithArgs("db_menu").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: storage.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM kv_store").
					WithArgs("db_menu").
					WillReturnError(errors.New("connection reset"))
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			kv, mock := setupPostgresKV(t)
			testCase.setupMock(mock)

			raw, err := kv.Get(context.Background(), "db_menu")
			switch {
			case testCase.wantErr != nil:
				assert.ErrorIs(t, err, testCase.wantErr)
			case testCase.want == "":
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, testCase.want, string(raw))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresKV_SetManyCommitsOnce(t *testing.T) {
	kv, mock := setupPostgresKV(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO kv_store").
		WithArgs("db_cart", `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO kv_store").
		WithArgs("db_orders", `[{"id":"a"}]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := kv.SetMany(context.Background(), map[string][]byte{
		"db_orders": []byte(`[{"id":"a"}]`),
		"db_cart":   []byte(`[]`),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKV_SetManyRollsBack(t *testing.T) {
	kv, mock := setupPostgresKV(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO kv_store").
		WithArgs("db_cart", `[]`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := kv.SetMany(context.Background(), map[string][]byte{"db_cart": []byte(`[]`)})
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKV_EnsureSchema(t *testing.T) {
	kv, mock := setupPostgresKV(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, kv.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
