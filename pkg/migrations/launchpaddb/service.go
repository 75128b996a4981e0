// Package launchpaddb holds all the migrations for the launchpad database
package launchpaddb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the launchpad database
var Migrations = migrate.NewMigrations()
