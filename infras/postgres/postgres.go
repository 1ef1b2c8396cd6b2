package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Connection splits traffic between a read replica and the primary.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  CreatePostgresReadConn(cfg),
		Write: CreatePostgresWriteConn(cfg),
	}
}

// Close releases both pools. Read and Write may point at the same server.
func (c *Connection) Close() error {
	var errs []error

	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type endpoint struct {
	name, username, password, host, port, database, sslMode, timezone string
}

func (e endpoint) dsn() string {
	query := url.Values{}
	query.Set("sslmode", e.sslMode)

	if e.timezone != "" {
		query.Set("timezone", e.timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     e.database,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func databaseName(cfg *config.Config, base string) string {
	return cfg.DB.Postgres.Prefix + base
}

func CreatePostgresWriteConn(cfg *config.Config) *sqlx.DB {
	w := cfg.DB.Postgres.Write

	return connect(endpoint{
		name: "write", username: w.Username, password: w.Password, host: w.Host, port: w.Port,
		database: databaseName(cfg, w.Name), sslMode: w.SSLMode, timezone: w.Timezone,
	}, cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime)
}

func CreatePostgresReadConn(cfg *config.Config) *sqlx.DB {
	r := cfg.DB.Postgres.Read

	return connect(endpoint{
		name: "read", username: r.Username, password: r.Password, host: r.Host, port: r.Port,
		database: databaseName(cfg, r.Name), sslMode: r.SSLMode, timezone: r.Timezone,
	}, cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime)
}

// DSN builds the write-side connection string, used by the migrator.
func DSN(cfg *config.Config) string {
	w := cfg.DB.Postgres.Write

	return endpoint{
		username: w.Username, password: w.Password, host: w.Host, port: w.Port,
		database: databaseName(cfg, w.Name), sslMode: w.SSLMode, timezone: w.Timezone,
	}.dsn()
}

func connect(e endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	logger := log.With().Str("name", e.name).Str("host", e.host).Str("port", e.port).Str("dbName", e.database).Logger()

	for attempt := range max(maxRetry, 1) {
		db, err := sqlx.Connect("postgres", e.dsn())
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)
			db.SetConnMaxLifetime(postgresConnMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Fatal().Msg(fmt.Sprintf("could not connect to database after %d attempts", maxRetry))

	return nil
}
