package jobs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkrause/service_market/database"
	"github.com/dkrause/service_market/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSweepOrphanedUploads(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)

	db, err := gorm.Open(sqlite.Open("file:sweep_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Offer{}, &models.OfferDetail{}))
	database.DB = db

	user := models.User{Username: "keeper", Email: "keeper@example.com", Password: "x", Type: models.UserTypeBusiness, File: "user_keeper.png"}
	require.NoError(t, db.Create(&user).Error)
	offer := models.Offer{UserID: user.ID, Title: "Kept", Image: "offer_kept.png"}
	require.NoError(t, db.Create(&offer).Error)

	for _, name := range []string{"user_keeper.png", "offer_kept.png", "orphan_one.png", "orphan_two.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	SweepOrphanedUploads()

	_, err = os.Stat(filepath.Join(dir, "user_keeper.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "offer_kept.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "orphan_one.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "orphan_two.pdf"))
	assert.True(t, os.IsNotExist(err))
}
