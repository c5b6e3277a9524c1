package postgres_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixmycondo/config"
	"fixmycondo/infras/postgres"
)

func TestDSN(t *testing.T) {
	node := config.PostgresNode{
		Host:     "db.internal",
		Port:     "5432",
		Username: "fixmycondo",
		Password: "p@ss:w/rd",
		Name:     "condo",
		Timezone: "Asia/Kuala_Lumpur",
		SSLMode:  "disable",
	}

	dsn := postgres.DSN(node, "staging_", url.Values{"x-migrations-table": {"schema_migrations"}})

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)

	password, _ := parsed.User.Password()
	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "p@ss:w/rd", password)
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/staging_condo", parsed.Path)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "Asia/Kuala_Lumpur", parsed.Query().Get("timezone"))
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
}

func TestDSN_OmitsUnsetOptions(t *testing.T) {
	dsn := postgres.DSN(config.PostgresNode{Host: "localhost", Port: "5432", Username: "u", Name: "condo"}, "", nil)

	assert.Equal(t, "postgres://u:@localhost:5432/condo", dsn)
}
