package services

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
)

// isDuplicateKeyError detects a MySQL unique-constraint violation (1062),
// falling back to message matching for other drivers in tests.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate") || strings.Contains(lower, "unique")
}
