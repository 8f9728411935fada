package postgres

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Every column the repositories select or insert must exist in the bootstrap
// migration; a drifted schema fails each query at parse time on a live
// database, which the in-memory suites cannot catch.
func TestMigrationCoversRepositoryColumns(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "assets", "migrations", "0001_init.up.sql"))
	require.NoError(t, err)
	ddl := strings.ToLower(string(raw))

	tables := map[string][]string{
		"customers":    {"id", "email", "name", "status", "created_at", "updated_at"},
		"products":     {"id", "name", "description", "price", "status", "created_at", "updated_at"},
		"orders":       {"id", "customer_id", "product_ids", "total_amount", "status", "created_at", "updated_at"},
		"order_events": {"id", "order_id", "customer_id", "action", "payload", "created_at"},
	}

	for table, columns := range tables {
		stmt := tableDDL(t, ddl, table)
		for _, column := range columns {
			pattern := regexp.MustCompile(`(?m)^\s*` + column + `\s`)
			require.Truef(t, pattern.MatchString(stmt),
				"table %s is missing column %s", table, column)
		}
	}
}

func tableDDL(t *testing.T, ddl, table string) string {
	t.Helper()
	marker := "create table if not exists " + table + " ("
	start := strings.Index(ddl, marker)
	require.NotEqualf(t, -1, start, "no create statement for table %s", table)

	body := ddl[start+len(marker):]
	end := strings.Index(body, ");")
	require.NotEqual(t, -1, end)
	return body[:end]
}
