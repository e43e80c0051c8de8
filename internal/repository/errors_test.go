package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil, "product"))

	err := classify(gorm.ErrRecordNotFound, "product")
	assert.ErrorIs(t, err, apierror.ErrNotFound)
	assert.Contains(t, err.Error(), "product")

	assert.ErrorIs(t, classify(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), "user"), apierror.ErrConflict)
	assert.ErrorIs(t, classify(&mysql.MySQLError{Number: 1062}, "category"), apierror.ErrConflict)
	assert.ErrorIs(t, classify(gorm.ErrDuplicatedKey, "category"), apierror.ErrConflict)

	plain := errors.New("connection refused")
	assert.Equal(t, plain, classify(plain, "product"))
}
