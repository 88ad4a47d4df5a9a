package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/schedule-cli/internal/store"
)

// initStore opens and migrates the run database.
func initStore(ctx context.Context) (store.Store, error) {
	dsn := cfg.Store.DatabaseURL
	if dsn == "" {
		dsn = "schedule.db"
	}
	st, err := store.NewSQLite(dsn)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "init store")
	}
	return st, nil
}
