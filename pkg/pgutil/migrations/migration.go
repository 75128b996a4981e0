// Package migrations holds helpers shared by the bun migration sets.
package migrations

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

const usageText = `Usage:
  launchpad-migrate -config config.yaml <command>

Supported commands:
  - init   creates the migration bookkeeping tables
  - up     applies all pending migrations
  - down   reverts the last migration group
  - status prints applied and pending migrations
`

// Usage prints command usage
func Usage() {
	fmt.Print(usageText)
	flag.PrintDefaults()
	os.Exit(2)
}

// Exitf prints the message and usage, then exits.
func Exitf(s string, args ...any) {
	fmt.Fprintf(os.Stderr, s+"\n", args...)
	Usage()
}

// CreateSchema creates a table for each model if it does not exist yet.
func CreateSchema(ctx context.Context, db bun.IDB, models ...any) error {
	for _, model := range models {
		log.Println("creating table for", reflect.TypeOf(model))
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DropTables drops the tables backing models.
func DropTables(ctx context.Context, db bun.IDB, models ...any) error {
	for _, model := range models {
		log.Println("dropping table for", reflect.TypeOf(model))
		if _, err := db.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// CreateModelIndexes creates one idx_<table>_<column> index per column.
func CreateModelIndexes(ctx context.Context, db bun.IDB, model any, columns ...string) error {
	for _, column := range columns {
		name, err := modelIndexName(db, model, column)
		if err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().
			Model(model).
			Index(name).
			Column(column).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DropModelIndexes drops indexes created by CreateModelIndexes.
func DropModelIndexes(ctx context.Context, db bun.IDB, model any, columns ...string) error {
	for _, column := range columns {
		name, err := modelIndexName(db, model, column)
		if err != nil {
			return err
		}
		if _, err := db.NewDropIndex().Model(model).Index(name).IfExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func modelIndexName(db bun.IDB, model any, column string) (string, error) {
	if model == nil {
		return "", fmt.Errorf("model cannot be nil")
	}
	table := db.NewCreateIndex().Model(model).GetTableName()
	if table == "" {
		return "", fmt.Errorf("failed to resolve table name for model %T", model)
	}
	table = strings.NewReplacer(`"`, "", ".", "_").Replace(table)
	return fmt.Sprintf("idx_%s_%s", table, column), nil
}

// RunMigrations executes a migrate command (init, up, down, status).
func RunMigrations(ctx context.Context, migrator *migrate.Migrator, args ...string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return cmd(ctx, migrator)
}

var commands = map[string]func(context.Context, *migrate.Migrator) error{
	"init":   initTables,
	"up":     locked(migrateUp),
	"down":   locked(rollback),
	"status": printStatus,
}

func locked(fn func(context.Context, *migrate.Migrator) error) func(context.Context, *migrate.Migrator) error {
	return func(ctx context.Context, m *migrate.Migrator) error {
		if err := m.Lock(ctx); err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}
		defer func() {
			if err := m.Unlock(ctx); err != nil {
				log.Printf("release migration lock: %v", err)
			}
		}()
		return fn(ctx, m)
	}
}

func initTables(ctx context.Context, m *migrate.Migrator) error {
	if err := m.Init(ctx); err != nil {
		return err
	}
	log.Println("migration tables ready")
	return nil
}

func migrateUp(ctx context.Context, m *migrate.Migrator) error {
	group, err := m.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		log.Println("no pending migrations")
		return nil
	}
	log.Printf("applied %s\n", group)
	return nil
}

func rollback(ctx context.Context, m *migrate.Migrator) error {
	group, err := m.Rollback(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		log.Println("nothing to roll back")
		return nil
	}
	log.Printf("rolled back %s\n", group)
	return nil
}

func printStatus(ctx context.Context, m *migrate.Migrator) error {
	ms, err := m.MigrationsWithStatus(ctx)
	if err != nil {
		return err
	}
	log.Printf("applied: %s\n", ms.Applied())
	log.Printf("pending: %s\n", ms.Unapplied())
	log.Printf("last group: %s\n", ms.LastGroup())
	return nil
}
