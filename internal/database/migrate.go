package database

import (
	message "github.com/xpanvictor/linguabridge/internal/repository/message"
	"gorm.io/gorm"
)

func MigrateDB(db *gorm.DB) {
	db.AutoMigrate(
		&message.MessageEntity{},
	)
}
