package launchpaddb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/chainsafe/token-launchpad/pkg/issuancestore"
	mghelper "github.com/chainsafe/token-launchpad/pkg/pgutil/migrations"
)

var issuanceIndexes = []string{"status", "asset", "requested_by", "created_at"}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating issuances table...")
		if err := mghelper.CreateSchema(ctx, db, &issuancestore.IssuanceDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &issuancestore.IssuanceDao{}, issuanceIndexes...)
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping issuances table...")
		if err := mghelper.DropModelIndexes(ctx, db, &issuancestore.IssuanceDao{}, issuanceIndexes...); err != nil {
			return err
		}
		return mghelper.DropTables(ctx, db, &issuancestore.IssuanceDao{})
	})
}
