package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrVersionConflict means a version-guarded update matched no row: the
// record changed (or vanished) since the caller read it.
var ErrVersionConflict = errors.New("version conflict")

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accountModel{},
		&registrationModel{},
		&contentModel{},
		&teamMemberModel{},
		&siteSettingModel{},
	)
}
