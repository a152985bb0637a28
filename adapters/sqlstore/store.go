package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"adhypo/internal/config"
	"adhypo/internal/errors"
	"adhypo/internal/migration"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// Open connects to the ledger database and applies the schema
func Open(ctx context.Context, cfg config.LedgerConfig, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.DatabaseError(fmt.Sprintf("failed to connect to %s ledger", cfg.Driver), err)
	}

	if cfg.Driver == config.DriverSQLite {
		// sqlite allows one writer; in-memory databases are also per connection
		db.SetMaxOpenConns(1)
	}

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.DatabaseError("failed to migrate ledger schema", err)
	}

	logger.Named("ledger").Info("ledger ready",
		zap.String("driver", cfg.Driver),
		zap.String("schema_version", runner.Version()))
	return db, nil
}
