package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	root "sitecontact"
	"sitecontact/pkg/storage"
	"sitecontact/pkg/storage/postgres"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
	testDB       = "testdb"
)

type postgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      int
}

func startPostgresContainer(ctx context.Context) (*postgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       testDB,
		},
		WaitingFor: wait.ForListeningPort("5432"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("could not get mapped port: %w", err)
	}

	return &postgresContainer{
		Container: container,
		Host:      host,
		Port:      mappedPort.Int(),
	}, nil
}

func setupTestDB(t *testing.T) (*postgres.PgSQL, func()) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := startPostgresContainer(ctx)
	require.NoError(t, err)

	pgSQL, err := postgres.New(ctx, postgres.Options{
		Username:           testUser,
		Password:           testPassword,
		Host:               pgContainer.Host,
		Port:               pgContainer.Port,
		Database:           testDB,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 5,
	})
	require.NoError(t, err)

	_, err = pgSQL.Migrate(ctx, root.Migrations)
	require.NoError(t, err)

	return pgSQL, func() {
		_ = pgSQL.Close()
		_ = pgContainer.Container.Terminate(ctx)
	}
}

func tableExists(t *testing.T, pg *postgres.PgSQL, table string) bool {
	t.Helper()

	var name sql.NullString
	err := pg.DB.QueryRowContext(context.Background(), "SELECT to_regclass($1)::text", "public."+table).Scan(&name)
	require.NoError(t, err)

	return name.Valid
}

func TestPgSQL_Migrate(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	require.True(t, tableExists(t, pg, "contact_messages"))
	require.True(t, tableExists(t, pg, "river_job"))
	require.False(t, tableExists(t, pg, "contact_attachments"))

	// setupTestDB already migrated, so a second run applies nothing
	versions, err := pg.Migrate(ctx, root.Migrations)
	require.NoError(t, err)
	require.GreaterOrEqual(t, versions.Contact, int64(1))
	require.Positive(t, versions.River)
	require.Empty(t, versions.RiverApplied)

	var indexed bool
	err = pg.DB.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_indexes WHERE tablename = 'contact_messages' AND indexdef LIKE '%(created_at DESC, id DESC)%')",
	).Scan(&indexed)
	require.NoError(t, err)
	require.True(t, indexed, "keyset index backs Messages pagination")
}

func TestPgSQL_Migrate_RejectsTransaction(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	tx, err := pg.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = tx.(*postgres.PgSQL).Migrate(ctx, root.Migrations)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)
}
