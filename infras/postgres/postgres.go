package postgres

//nolint:revive
import (
	"fixmycondo/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits traffic between the primary and a read replica. Both point at the
// same pool when no replica is configured.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	write := connect("write", cfg.DB.Postgres.Write, cfg)

	read := write
	if cfg.DB.Postgres.Read.Host != "" {
		read = connect("read", cfg.DB.Postgres.Read, cfg)
	}

	return &Connection{
		Read:  read,
		Write: write,
	}
}

// DSN renders node as a connection URL. Credentials are escaped and the
// configured prefix is prepended to the database name.
func DSN(node config.PostgresNode, prefix string, params url.Values) string {
	query := url.Values{}

	for key, values := range params {
		query[key] = values
	}

	if node.SSLMode != "" {
		query.Set("sslmode", node.SSLMode)
	}

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + prefix + node.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(name string, node config.PostgresNode, cfg *config.Config) *sqlx.DB {
	pg := cfg.DB.Postgres
	attempts := max(pg.MaxRetry, 1)

	logger := log.With().Str("name", name).Str("host", node.Host).Str("port", node.Port).Str("dbName", pg.Prefix+node.Name).Logger()

	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		var db *sqlx.DB

		db, err = sqlx.Connect(driverName, DSN(node, pg.Prefix, nil))
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetimeMinutes) * time.Minute)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	logger.Fatal().Err(err).Int("attempts", attempts).Msg("Could not connect to database")

	return nil
}
