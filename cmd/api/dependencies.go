package api

import (
	"fmt"
	"log/slog"
	"time"

	partnersrepo "github.com/ahangamapass/venues-api/internal/domain/partners"
	venuesrepo "github.com/ahangamapass/venues-api/internal/domain/venues"
	"github.com/ahangamapass/venues-api/pkg/config"
	"github.com/ahangamapass/venues-api/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	VenueRepo   venuesrepo.Repository
	PartnerRepo partnersrepo.Repository

	// Services
	VenueSvc   venuesrepo.Service
	PartnerSvc partnersrepo.Service

	// Handlers
	VenueHandler   *venuesrepo.Handler
	PartnerHandler *partnersrepo.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	deps.initRepositories()
	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initRepositories initializes all repository layer dependencies
func (d *Dependencies) initRepositories() {
	d.VenueRepo = venuesrepo.NewRepositoryImpl(d.DB.Pool, d.Logger)
	d.PartnerRepo = partnersrepo.NewRepositoryImpl(d.DB.Pool, d.Logger)
	d.Logger.Info("repositories initialized")
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() {
	mailer := partnersrepo.NewSMTPMailer(partnersrepo.SMTPConfig{
		Host:     d.Config.Mail.SMTPHost,
		Port:     d.Config.Mail.SMTPPort,
		Username: d.Config.Mail.SMTPUsername,
		Password: d.Config.Mail.SMTPPassword,
		From:     d.Config.Mail.From,
	})

	d.VenueSvc = venuesrepo.NewServiceImpl(d.VenueRepo, d.Logger)
	d.PartnerSvc = partnersrepo.NewServiceImpl(d.PartnerRepo, mailer, d.Config.Mail.OperatorEmail, d.Logger)
	d.Logger.Info("services initialized")
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() {
	d.VenueHandler = venuesrepo.NewHandler(d.VenueSvc, d.Logger)
	d.PartnerHandler = partnersrepo.NewHandler(d.PartnerSvc, d.Logger)
	d.Logger.Info("handlers initialized")
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
