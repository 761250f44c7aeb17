package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/alpha/internal/cli"
	"github.com/julianstephens/alpha/internal/migration"
)

// migrator is implemented by both the SQLite and the PostgreSQL store.
type migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (migration.Status, error)
}

type MigrateCmd struct {
	Status bool `help:"Only report the schema version and pending migrations."`
}

func (cmd *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return errors.New("this store does not support migrations")
	}

	if cmd.Status {
		status, err := m.SchemaStatus()
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		ctx.Printf("Schema version: %d (latest %d)\n", status.Current, status.Latest)
		if status.UpToDate() {
			ctx.Println("No pending migrations.")
			return nil
		}
		for _, p := range status.Pending {
			ctx.Printf("  pending: %03d_%s\n", p.Version, p.Name)
		}
		return nil
	}

	applied, err := m.Migrate(func(msg string) { ctx.Println(msg) })
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if applied == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("Successfully applied %d migration(s).\n", applied)
	}
	return nil
}
