package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		sqlDB.Close()
		t.Fatalf("failed to open gorm DB with sqlmock: %v", err)
	}

	return gdb, mock
}

func TestMarketDataRepositoryFindLastClose(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &MarketDataRepository{db: mockDB}

	date := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "instrumentid", "close", "date"}).
		AddRow(12, 1, "257.00", date)

	mock.ExpectQuery(`SELECT (.+) FROM "marketdata" WHERE instrumentid =`).
		WillReturnRows(rows)

	result, err := repo.FindLastCloseByInstrumentID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, uint(1), result.InstrumentID)
	assert.Equal(t, "257", result.Close.String())
	assert.True(t, result.Date.Equal(date))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarketDataRepositoryFindLastCloseNotFound(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &MarketDataRepository{db: mockDB}

	mock.ExpectQuery(`SELECT (.+) FROM "marketdata" WHERE instrumentid =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "instrumentid", "close", "date"}))

	result, err := repo.FindLastCloseByInstrumentID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.NoError(t, mock.ExpectationsWereMet())
}
