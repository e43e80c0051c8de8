package repository

import (
	"errors"
	"fmt"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// classify maps driver errors onto the apierror kinds. what names the entity
// for the NotFound message ("product", "borrowing record"...).
func classify(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", apierror.ErrNotFound, what)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s already exists", apierror.ErrConflict, what)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	return false
}
