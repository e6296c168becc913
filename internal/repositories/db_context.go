package repositories

import (
	"context"
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"os"
	"path/filepath"
	"strings"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	if err := ensureDatabaseDir(connectionString); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(withPragmas(connectionString)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func withPragmas(connectionString string) string {
	if strings.Contains(connectionString, "_pragma=") {
		return connectionString
	}
	if strings.Contains(connectionString, "?") {
		return connectionString + "&" + sqlitePragmas
	}
	return connectionString + "?" + sqlitePragmas
}

func ensureDatabaseDir(connectionString string) error {
	path, _, _ := strings.Cut(connectionString, "?")
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

func (c *DbContext) Migrate() error {
	entities := []struct {
		name  string
		value any
	}{
		{"User", models.User{}},
		{"CandidateProfile", models.CandidateProfile{}},
		{"CompanyProfile", models.CompanyProfile{}},
		{"Job", models.Job{}},
		{"Application", models.Application{}},
		{"StageHistory", models.StageHistory{}},
		{"Favorite", models.Favorite{}},
		{"Resume", models.Resume{}},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity.value); err != nil {
			return fmt.Errorf("failed to migrate %s entity: %w", entity.name, err)
		}
	}

	return nil
}

func (c *DbContext) Ping(ctx context.Context) error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}
	if err = db.PingContext(ctx); err != nil {
		return err
	}
	return c.DB.WithContext(ctx).Exec("SELECT 1").Error
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
