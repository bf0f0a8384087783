package repositories

import (
	"context"
	"regexp"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pgPlaceholder = regexp.MustCompile(`\$(\d+)`)

func TestPostgresQueryPlaceholders(t *testing.T) {
	tests := []struct {
		name  string
		query string
		args  int
	}{
		{"list ways", pgListWaysQuery, 0},
		{"get way", pgWayQuery, 1},
		{"get way nodes", pgWayNodesQuery, 1},
		{"upsert way", pgUpsertWay, 2},
		{"delete way nodes", pgDeleteWayNodes, 1},
		{"insert way node", pgInsertWayNode, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotContains(t, tt.query, "?", "sqlite placeholder in postgres query")

			var got []int
			for _, m := range pgPlaceholder.FindAllStringSubmatch(tt.query, -1) {
				n, err := strconv.Atoi(m[1])
				require.NoError(t, err)
				if !slices.Contains(got, n) {
					got = append(got, n)
				}
			}
			slices.Sort(got)

			want := []int{}
			for i := 1; i <= tt.args; i++ {
				want = append(want, i)
			}
			if got == nil {
				got = []int{}
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestPostgresQueriesShape(t *testing.T) {
	assert.Contains(t, pgListWaysQuery, "ORDER BY way_id")
	assert.Contains(t, pgWayNodesQuery, "ORDER BY seq")
	assert.Contains(t, pgUpsertWay, "ON CONFLICT (way_id) DO UPDATE")
}

func TestSQLWayRepositoryNilDB(t *testing.T) {
	repo := NewSQLWayRepository(nil)
	ctx := context.Background()

	_, err := repo.ListWays(ctx)
	require.Error(t, err)

	_, err = repo.GetWay(ctx, 1)
	require.Error(t, err)

	require.Error(t, InitPostgresSchema(ctx, nil))
	require.Error(t, SeedPostgresFromJSON(ctx, nil, "unused.json"))
}
