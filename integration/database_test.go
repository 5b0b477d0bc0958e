//go:build database

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// exerciseBackend runs the cache and history lifecycle against one backend.
func exerciseBackend(t *testing.T, backend, connStr string) {
	t.Helper()
	env := []string{
		"RACECHART_CACHE_BACKEND=" + backend,
		"RACECHART_CACHE_DB_CONNECT=" + connStr,
		"RACECHART_HISTORY_BACKEND=" + backend,
		"RACECHART_HISTORY_DB_CONNECT=" + connStr,
	}
	dir := t.TempDir()

	_, err := runRacechart(t, env, "cache", "clear")
	require.NoError(t, err)

	_, err = runRacechart(t, env, "history", "clear")
	require.NoError(t, err)

	_, err = runRacechart(t, env, "history", "migrate")
	require.NoError(t, err)

	// First render fills the cache, the second reads from it
	for range 2 {
		_, err = runRacechart(t, env, "render", datasetPath, "--output", "json", "--output-file", filepath.Join(dir, "chart.json"))
		require.NoError(t, err)
	}

	output, err := runRacechart(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Total Entries: 1")

	output, err = runRacechart(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Total Runs: 2")

	_, err = runRacechart(t, env, "history", "export", "--output-file", filepath.Join(dir, "export"))
	require.NoError(t, err)
}

// TestRacechartWithMySQL tests the racechart CLI with a MySQL backend.
func TestRacechartWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "racechart",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/racechart?parseTime=true&multiStatements=true", host, port.Port())
	exerciseBackend(t, "mysql", connStr)
}

// TestRacechartWithPostgres tests the racechart CLI with a PostgreSQL backend.
func TestRacechartWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseBackend(t, "postgresql", connStr)
}
