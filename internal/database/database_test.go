package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/config"
)

func TestBuildPostgresDSN(t *testing.T) {
	base := config.DatabaseConfig{Host: "db", Port: "5432", User: "jobboard", Name: "jobboard"}
	with := func(mut func(*config.DatabaseConfig)) config.DatabaseConfig {
		c := base
		mut(&c)
		return c
	}

	tests := []struct {
		name   string
		config config.DatabaseConfig
		want   string
	}{
		{"password and sslmode", with(func(c *config.DatabaseConfig) { c.Password, c.SSLMode = "s3cret", "disable" }),
			"postgres://jobboard:s3cret@db:5432/jobboard?sslmode=disable"},
		{"password is escaped", with(func(c *config.DatabaseConfig) { c.Password = "p@ss/word" }),
			"postgres://jobboard:p%40ss%2Fword@db:5432/jobboard"},
		{"no password", with(func(c *config.DatabaseConfig) { c.SSLMode = "require" }),
			"postgres://jobboard@db:5432/jobboard?sslmode=require"},
		{"bare", base, "postgres://jobboard@db:5432/jobboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildPostgresDSN(tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, missing := range []func(*config.DatabaseConfig){
		func(c *config.DatabaseConfig) { c.Host = "" },
		func(c *config.DatabaseConfig) { c.Port = "" },
		func(c *config.DatabaseConfig) { c.User = "" },
		func(c *config.DatabaseConfig) { c.Name = "" },
	} {
		_, err := BuildPostgresDSN(with(missing))
		assert.Error(t, err)
	}

	_, err := BuildPostgresDSN(config.DatabaseConfig{Host: "db"})
	assert.EqualError(t, err, "invalid database config: missing port, user, name")
}

// stubOpen makes NewPostgres use db (or fail with err) for the rest of the test.
func stubOpen(t *testing.T, db *sql.DB, err error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return db, err }
	t.Cleanup(func() { sqlOpen = orig })
}

func TestNewPostgres(t *testing.T) {
	conf := config.DatabaseConfig{
		Host: "db", Port: "5432", User: "jobboard", Password: "s3cret", Name: "jobboard",
		MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetimeSec: 300,
	}

	t.Run("pool configured", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		stubOpen(t, db, nil)
		mock.ExpectPing()

		got, err := NewPostgres(context.Background(), conf)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Stats().MaxOpenConnections)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open fails", func(t *testing.T) {
		stubOpen(t, nil, errors.New("driver missing"))
		got, err := NewPostgres(context.Background(), conf)
		assert.ErrorContains(t, err, "sql open: driver missing")
		assert.Nil(t, got)
	})

	t.Run("unreachable", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		got, err := NewPostgres(context.Background(), conf)
		assert.ErrorContains(t, err, "db ping: connection refused")
		assert.Nil(t, got)
	})

	t.Run("incomplete config", func(t *testing.T) {
		got, err := NewPostgres(context.Background(), config.DatabaseConfig{})
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, Ping(context.Background(), db, time.Second))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.Error(t, Ping(context.Background(), db, time.Second))

	assert.Error(t, Ping(context.Background(), nil, time.Second))
	assert.NoError(t, mock.ExpectationsWereMet())
}
