package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/saroopcarr/DoorHinge/models"
	"github.com/saroopcarr/DoorHinge/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database per test, migrated with the
// same schema the server uses. TranslateError stays on so unique-constraint
// races behave like production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))
	return db
}

func newOwner(t *testing.T, db *gorm.DB, email string) (*models.User, *models.OwnerProfile) {
	t.Helper()
	user := models.User{Email: email, Role: models.RoleOwner}
	require.NoError(t, db.Create(&user).Error)
	profile := models.OwnerProfile{UserID: user.ID, BusinessName: "Test Lettings", IsProfileComplete: true}
	require.NoError(t, db.Create(&profile).Error)
	return &user, &profile
}

func newSeeker(t *testing.T, db *gorm.DB, email string) (*models.User, *models.SeekerProfile) {
	t.Helper()
	user := models.User{Email: email, Role: models.RoleSeeker}
	require.NoError(t, db.Create(&user).Error)
	profile := models.SeekerProfile{UserID: user.ID, FirstName: "Test", LastName: "Seeker", MaxBudget: 50000}
	require.NoError(t, db.Create(&profile).Error)
	return &user, &profile
}

func newProperty(t *testing.T, db *gorm.DB, ownerProfileID uint, area string, rent int) *models.Property {
	t.Helper()
	active := true
	property := models.Property{
		OwnerID:         ownerProfileID,
		Title:           "Sunny two bed in " + area,
		Description:     "Bright flat close to the metro station",
		Area:            area,
		Bedrooms:        models.BedroomsTwo,
		FurnishedStatus: models.Furnished,
		RentAmount:      rent,
		IsActive:        &active,
	}
	require.NoError(t, db.Create(&property).Error)
	return &property
}
