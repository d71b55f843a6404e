package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"postgres://u:p@localhost:5432/crm?sslmode=disable", "pgx5://u:p@localhost:5432/crm?sslmode=disable"},
		{"postgresql://u:p@db.internal/crm", "pgx5://u:p@db.internal/crm"},
		{"pgx5://u:p@localhost/crm", "pgx5://u:p@localhost/crm"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DatabaseURL(tc.in), tc.in)
	}
}
