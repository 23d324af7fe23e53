package migrate

import (
	"context"
	"fmt"

	"github.com/bookhavenhq/bookhaven/pkg/db"
	"github.com/bookhavenhq/bookhaven/pkg/logger"
)

// Run ensures the snapshot schema exists before any store rehydrates. It runs
// on every startup; goose makes already-applied migrations a no-op.
func Run(ctx context.Context, logg *logger.Logger, client *db.Client) error {
	sqlDB, err := client.SQLDB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	if err := Up(ctx, sqlDB); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	if logg != nil {
		logg.Debug(ctx, "local storage schema up to date")
	}
	return nil
}
