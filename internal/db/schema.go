package db

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EnsureSchema creates schema on postgres. Other dialects have no schemas
// and are left alone.
func EnsureSchema(d *gorm.DB, schema string) error {
	if schema == "" || d.Dialector.Name() != "postgres" {
		return nil
	}
	return d.Exec(`CREATE SCHEMA IF NOT EXISTS ` + pq.QuoteIdentifier(schema)).Error
}
