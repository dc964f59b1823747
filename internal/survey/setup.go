package survey

import (
	"log"

	"github.com/cqhei/cqhei-survey/internal/db"
	"gorm.io/gorm"
)

func Init(d *gorm.DB, schema string) {
	// Postgres keeps the survey tables in their own schema
	if err := db.EnsureSchema(d, schema); err != nil {
		log.Fatal("Failed to ensure schema ", schema, ": ", err)
	}

	if err := Migrate(d); err != nil {
		log.Fatal("Failed to auto-migrate survey tables: ", err)
	}

	log.Println("Survey module initialized")
}

// Migrate creates or updates the survey_records table. CoverRecord belongs
// to another system and is deliberately left out.
func Migrate(d *gorm.DB) error {
	return d.AutoMigrate(&SurveyRecord{})
}
