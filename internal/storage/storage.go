package storage

import (
	"sync"

	"sprintdesk/internal/config"
	"sprintdesk/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

func GetDb() *gorm.DB {
	once.Do(connect)
	return db
}

func connect() {
	log := logger.GetLogger()

	gormDb, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		panic(err)
	}

	db = gormDb
}
