package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gastropro/gastropro/internal/api"
	"github.com/gastropro/gastropro/internal/app"
	"github.com/gastropro/gastropro/internal/app/maintenance"
	"github.com/gastropro/gastropro/internal/database"
	"github.com/gastropro/gastropro/internal/notifications"
	"github.com/gastropro/gastropro/internal/services"
)

// runtimeStack bundles long-lived components used by the HTTP server.
type runtimeStack struct {
	DB      *gorm.DB
	Hub     *notifications.Hub
	Cleaner *maintenance.Cleaner
	Router  *gin.Engine
}

// bootstrapRuntime initialises the database, services, maintenance jobs and
// the HTTP router.
func bootstrapRuntime(cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	stack.Hub = notifications.NewHub()

	notificationSvc, err := services.NewNotificationService(stack.DB, stack.Hub, cfg.Notifications.ServiceConfig())
	if err != nil {
		return nil, fmt.Errorf("initialise notification service: %w", err)
	}
	inventorySvc, err := services.NewInventoryService(stack.DB, services.NewNotificationEvents(notificationSvc))
	if err != nil {
		return nil, fmt.Errorf("initialise inventory service: %w", err)
	}

	stack.Cleaner = maintenance.NewCleaner(notificationSvc, inventorySvc,
		maintenance.WithCleanupSchedule(cfg.Maintenance.CleanupSchedule),
		maintenance.WithSweepSchedule(cfg.Maintenance.InventorySweepSchedule),
	)
	if err := stack.Cleaner.Start(); err != nil {
		return nil, fmt.Errorf("start maintenance jobs: %w", err)
	}

	stack.Router, err = api.NewRouter(stack.DB, cfg, stack.Hub)
	if err != nil {
		return nil, fmt.Errorf("initialise router: %w", err)
	}

	success = true
	return stack, nil
}

// Shutdown stops background jobs and closes the database connection.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Cleaner != nil {
		done := s.Cleaner.Stop()
		select {
		case <-done.Done():
		case <-ctx.Done():
			log.Warn("maintenance jobs did not stop before shutdown deadline")
		}
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	db, err := database.Open(databaseConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func databaseConfig(cfg *app.Config) database.Config {
	return database.Config{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		DSN:      cfg.Database.DSN,
		Host:     hostFor(cfg),
		Port:     portFor(cfg),
		Name:     nameFor(cfg),
		User:     userFor(cfg),
		Password: passwordFor(cfg),
	}
}

func hostFor(cfg *app.Config) string {
	if cfg.Database.Driver == "mysql" {
		return cfg.Database.MySQL.Host
	}
	return cfg.Database.Postgres.Host
}

func portFor(cfg *app.Config) int {
	if cfg.Database.Driver == "mysql" {
		return cfg.Database.MySQL.Port
	}
	return cfg.Database.Postgres.Port
}

func nameFor(cfg *app.Config) string {
	if cfg.Database.Driver == "mysql" {
		return cfg.Database.MySQL.Database
	}
	return cfg.Database.Postgres.Database
}

func userFor(cfg *app.Config) string {
	if cfg.Database.Driver == "mysql" {
		return cfg.Database.MySQL.Username
	}
	return cfg.Database.Postgres.Username
}

func passwordFor(cfg *app.Config) string {
	if cfg.Database.Driver == "mysql" {
		return cfg.Database.MySQL.Password
	}
	return cfg.Database.Postgres.Password
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("fetch database handle for close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("close database", zap.Error(err))
	}
}
