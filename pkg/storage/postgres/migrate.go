package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sitecontact/pkg/storage"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
)

// MigrationsDir is the directory inside the migrations FS holding the goose
// SQL files.
const MigrationsDir = "migrations"

// SchemaVersions reports the schema state after Migrate.
type SchemaVersions struct {
	// Contact is the goose version of the contact_messages schema.
	Contact int64
	// River is the version of River's job tables.
	River int
	// RiverApplied lists the River versions applied by this run.
	RiverApplied []int
}

// Migrate brings the contact_messages schema from fsys and River's job tables
// up to the latest version. It must not be called inside a transaction.
func (p *PgSQL) Migrate(ctx context.Context, fsys fs.FS) (SchemaVersions, error) {
	db, ok := p.DB.(*sql.DB)
	if !ok {
		return SchemaVersions{}, storage.ErrAlreadyInTx
	}

	var versions SchemaVersions

	goose.SetBaseFS(fsys)
	if err := goose.SetDialect("postgres"); err != nil {
		return versions, fmt.Errorf("could not set goose dialect to postgres: %w", err)
	}
	if err := goose.UpContext(ctx, db, MigrationsDir); err != nil {
		return versions, fmt.Errorf("could not migrate contact schema: %w", err)
	}
	contactVersion, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return versions, fmt.Errorf("could not read contact schema version: %w", err)
	}
	versions.Contact = contactVersion

	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return versions, fmt.Errorf("could not create river queue migrator: %w", err)
	}
	all := migrator.AllVersions()
	latest := all[len(all)-1].Version

	existing, err := migrator.ExistingVersions(ctx)
	if err != nil {
		return versions, fmt.Errorf("could not get existing river queue migrations: %w", err)
	}
	if len(existing) > 0 {
		versions.River = existing[len(existing)-1].Version
	}
	if latest > versions.River {
		res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{
			TargetVersion: latest,
		})
		if err != nil {
			return versions, fmt.Errorf("could not migrate river queue tables: %w", err)
		}
		for _, v := range res.Versions {
			versions.RiverApplied = append(versions.RiverApplied, v.Version)
		}
		versions.River = latest
	}

	return versions, nil
}
