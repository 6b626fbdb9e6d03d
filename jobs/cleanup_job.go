package jobs

import (
	"log"
	"os"

	"github.com/dkrause/service_market/database"
	"github.com/dkrause/service_market/models"
	"github.com/dkrause/service_market/utils"
)

// SweepOrphanedUploads removes files from the upload dir that no offer image
// or profile file column references anymore. Rows are updated before their
// old file is deleted, so a file missed by one sweep is caught by the next.
func SweepOrphanedUploads() {
	entries, err := os.ReadDir(utils.UploadDir())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Upload sweep failed to read upload dir: %v", err)
		}
		return
	}

	referenced := map[string]bool{}

	var offerImages []string
	database.DB.Model(&models.Offer{}).Where("image <> ''").Pluck("image", &offerImages)
	for _, name := range offerImages {
		referenced[name] = true
	}

	var profileFiles []string
	database.DB.Model(&models.User{}).Where("file <> ''").Pluck("file", &profileFiles)
	for _, name := range profileFiles {
		referenced[name] = true
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || referenced[entry.Name()] {
			continue
		}
		if err := os.Remove(utils.StoredFilePath(entry.Name())); err != nil {
			log.Printf("Upload sweep failed to remove %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("Upload sweep removed %d orphaned file(s)", removed)
	}
}
