package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/wordbook/internal/backup"
	"github.com/dmitrijs2005/wordbook/internal/config"
	"github.com/dmitrijs2005/wordbook/internal/enrich"
	"github.com/dmitrijs2005/wordbook/internal/logging"
	"github.com/dmitrijs2005/wordbook/internal/repositories/kv"
	"github.com/dmitrijs2005/wordbook/internal/services"
	"github.com/dmitrijs2005/wordbook/internal/storage"
	"github.com/dmitrijs2005/wordbook/internal/vault"
)

var (
	errNoDay    = errors.New("no day opened, use 'open' first")
	errNoSet    = errors.New("no set selected, use 'use' or 'newset' first")
	errNoAPIKey = errors.New("GEMINI_API_KEY is not set")
	errNoBucket = errors.New("S3 bucket is not configured (WORDBOOK_S3_BUCKET)")
)

// App holds the services and the REPL cursor (current day and set).
type App struct {
	config     *config.Config
	log        logging.Logger
	db         *sql.DB
	store      *vault.Store
	notebook   services.NotebookService
	legacy     services.LegacyService
	enrichment services.EnrichmentService

	reader *bufio.Reader
	out    io.Writer

	dayID   string
	setID   string
	setName string
}

// NewApp opens the database named by cfg and wires the services on top of it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "err", err)
		return nil, err
	}
	log.Debug(ctx, "database ready", "path", cfg.DatabasePath)

	a := newApp(cfg, log, vault.NewStore(kv.NewSQLiteRepository(db)), in, out)
	a.db = db
	return a, nil
}

func newApp(cfg *config.Config, log logging.Logger, store *vault.Store, in io.Reader, out io.Writer) *App {
	return &App{
		config:   cfg,
		log:      log,
		store:    store,
		notebook: services.NewNotebookService(store),
		legacy:   services.NewLegacyService(store),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Close releases the database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// backups builds a BackupService for the local backup directory, or for the
// configured bucket when remote is set.
func (a *App) backups(ctx context.Context, remote bool) (services.BackupService, error) {
	var dest backup.Destination = backup.NewDirDestination(a.config.BackupDir)
	if remote {
		s3cfg := a.config.S3
		if s3cfg.Bucket == "" {
			return nil, errNoBucket
		}
		d, err := backup.NewS3Destination(ctx, backup.S3Options{
			Bucket:    s3cfg.Bucket,
			Region:    s3cfg.Region,
			Endpoint:  s3cfg.Endpoint,
			AccessKey: s3cfg.AccessKey,
			SecretKey: s3cfg.SecretKey,
			Prefix:    s3cfg.Prefix,
		})
		if err != nil {
			return nil, err
		}
		dest = d
	}
	return services.NewBackupService(a.store, dest, services.WithLogger(a.log)), nil
}

// enricher lazily builds the enrichment service; the Gemini client is only
// created when a command needs it.
func (a *App) enricher(ctx context.Context) (services.EnrichmentService, error) {
	if a.enrichment != nil {
		return a.enrichment, nil
	}
	if a.config.GeminiAPIKey == "" {
		return nil, errNoAPIKey
	}

	gen, err := enrich.NewGenAIGenerator(ctx, a.config.GeminiAPIKey, a.config.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	client := enrich.NewClient(gen, enrich.NewLimiter(a.config.EnrichMaxRequests, a.config.EnrichWindow), a.log)
	a.enrichment = services.NewEnrichmentService(a.notebook, client, a.config.EnrichConcurrency, services.WithLogger(a.log))
	return a.enrichment, nil
}

// fail reports err to the user and returns it unchanged.
func (a *App) fail(ctx context.Context, op string, err error) error {
	a.log.Debug(ctx, "command failed", "op", op, "err", err)
	fmt.Fprintf(a.out, "error: %v\n", err)
	return err
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
