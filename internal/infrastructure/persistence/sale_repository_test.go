package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSaleRepository creates a GormSaleRepository with a mocked SQL connection
func newMockSaleRepository(t *testing.T) (*GormSaleRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSaleRepository(gormDB), mock, mockDB
}

func TestGormSaleRepository_NextSaleNumber(t *testing.T) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("SAL-%d-", year)

	t.Run("locks the current maximum and increments it", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		// The max read carries FOR UPDATE so concurrent settlements
		// serialize instead of minting the same number.
		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE tenant_id = \$1 AND sale_number LIKE \$2 ORDER BY sale_number DESC.* FOR UPDATE`).
			WithArgs(tenantID, prefix+"%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "sale_number"}).
				AddRow(uuid.New(), tenantID, prefix+"00017"))

		number, err := repo.NextSaleNumber(context.Background(), tenantID)

		require.NoError(t, err)
		assert.Equal(t, prefix+"00018", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts the year at one", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "sales"`).
			WithArgs(tenantID, prefix+"%", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		number, err := repo.NextSaleNumber(context.Background(), tenantID)

		require.NoError(t, err)
		assert.Equal(t, prefix+"00001", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
