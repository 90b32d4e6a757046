package database

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"editorial/config"
	"editorial/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Client opens the content store on first use and hands the same handle to
// every later caller.
type Client struct {
	dialector gorm.Dialector
	logLevel  logger.LogLevel

	once sync.Once
	db   *gorm.DB
	err  error
}

func NewClient(cfg *config.Config) *Client {
	return NewClientWithDialector(postgres.Open(cfg.DSN()), cfg.DBLogLevel)
}

func NewClientWithDialector(dialector gorm.Dialector, logLevel string) *Client {
	return &Client{
		dialector: dialector,
		logLevel:  parseLogLevel(logLevel),
	}
}

func (c *Client) DB() (*gorm.DB, error) {
	c.once.Do(func() {
		db, err := gorm.Open(c.dialector, &gorm.Config{
			Logger:         logger.Default.LogMode(c.logLevel),
			TranslateError: true,
		})
		if err != nil {
			c.err = fmt.Errorf("connect database: %w", err)
			return
		}
		log.Println("Database connected successfully")
		c.db = db
	})
	return c.db, c.err
}

func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Admin{},
		&models.Post{},
		&models.Comment{},
		&models.Contact{},
		&models.About{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.Println("Database migrated successfully")
	return nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
