package storage

import (
	"github.com/saroopcarr/DoorHinge/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDB opens the postgres connection and runs migrations. TranslateError
// is on so unique-constraint violations come back as gorm.ErrDuplicatedKey,
// which the services turn into Conflict.
func NewDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.OwnerProfile{},
		&models.SeekerProfile{},
		&models.Property{},
		&models.Like{},
		&models.Match{},
		&models.Message{},
		&models.Notification{},
	)
}
