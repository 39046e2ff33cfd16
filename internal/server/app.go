// Package server wires the credkit daemon together: it opens the database,
// applies migrations, builds the services and serves them over gRPC until
// the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/credkit/internal/logging"
	"github.com/dmitrijs2005/credkit/internal/randx"
	"github.com/dmitrijs2005/credkit/internal/server/config"
	"github.com/dmitrijs2005/credkit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/credkit/internal/server/services"
	"github.com/dmitrijs2005/credkit/internal/tokens"

	gs "github.com/dmitrijs2005/credkit/internal/server/grpc"
)

// ephemeralKeyBytes is the size of the JWT key generated when none is
// configured.
const ephemeralKeyBytes = 32

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	credentialService *services.CredentialService
	accountService    *services.AccountService
}

// NewApp validates c, connects to the database and runs migrations.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if c.SecretKey == "" {
		key, err := randx.HexString(randx.Default, ephemeralKeyBytes)
		if err != nil {
			return nil, fmt.Errorf("secret key: %w", err)
		}
		c.SecretKey = key
		logger.Warn(ctx, "No secret key configured, using a random one; access tokens will not survive a restart")
	}

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if c.DatabaseDriver == repomanager.DriverSQLite {
		// one writer at a time avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db connect error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	gen := tokens.NewGenerator(rm.Oracle(db), randx.Default, logger, tokens.WithMaxAttempts(c.TokenMaxAttempts))
	cs := services.NewCredentialService(gen, randx.Default, c.TokenLength, logger)

	as, err := services.NewAccountService(db, rm, cs, c, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, db: db, credentialService: cs, accountService: as}, nil
}

// NewLogger returns the daemon's JSON logger on stdout.
func NewLogger() logging.Logger {
	return logging.NewJSONLogger(slog.LevelInfo)
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver, "kdf", app.config.KDF)

	app.initSignalHandler(ctx, cancelFunc)

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.credentialService, app.accountService, app.config.SecretKey)
	err := s.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close failed", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
