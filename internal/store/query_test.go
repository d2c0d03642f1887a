package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestPremisesQuery_ToSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		query         PremisesQuery
		wantDataHas   []string // substrings that must appear in dataSQL
		wantDataNotIn []string // substrings that must NOT appear
		wantCountSQL  string
		wantArgs      []any
	}{
		{
			name:  "empty query uses defaults",
			query: PremisesQuery{},
			wantDataHas: []string{
				"FROM premises",
				"WHERE reo_id = $1",
				"ORDER BY floor ASC, number_of_unit ASC",
				"LIMIT 500",
				"OFFSET 0",
			},
			wantDataNotIn: []string{"status ="},
			wantCountSQL:  "SELECT COUNT(*) FROM premises WHERE reo_id = $1",
			wantArgs:      []any{int64(7)},
		},
		{
			name: "status filter",
			query: PremisesQuery{
				Status: ptr("sold"),
			},
			wantDataHas:  []string{"WHERE reo_id = $1 AND status = $2"},
			wantCountSQL: "SELECT COUNT(*) FROM premises WHERE reo_id = $1 AND status = $2",
			wantArgs:     []any{int64(7), "sold"},
		},
		{
			name: "entrance filter",
			query: PremisesQuery{
				Entrance: ptr("A"),
			},
			wantDataHas: []string{"entrance = $2"},
			wantArgs:    []any{int64(7), "A"},
		},
		{
			name: "layout type filter",
			query: PremisesQuery{
				LayoutType: ptr("2k"),
			},
			wantDataHas: []string{"layout_type = $2"},
			wantArgs:    []any{int64(7), "2k"},
		},
		{
			name: "floor range filter",
			query: PremisesQuery{
				MinFloor: ptr(2),
				MaxFloor: ptr(9),
			},
			wantDataHas: []string{"floor >= $2", "floor <= $3"},
			wantArgs:    []any{int64(7), 2, 9},
		},
		{
			name: "area range filter",
			query: PremisesQuery{
				MinAreaM2: ptr(30.0),
				MaxAreaM2: ptr(90.0),
			},
			wantDataHas: []string{"total_area_m2 >= $2", "total_area_m2 <= $3"},
			wantArgs:    []any{int64(7), 30.0, 90.0},
		},
		{
			name: "combined filters keep parameter order",
			query: PremisesQuery{
				Status:   ptr("available"),
				MinFloor: ptr(3),
			},
			wantDataHas: []string{"status = $2", "floor >= $3"},
			wantArgs:    []any{int64(7), "available", 3},
		},
		{
			name: "order by price",
			query: PremisesQuery{
				OrderBy: "price_per_meter",
			},
			wantDataHas: []string{"ORDER BY price_per_meter DESC"},
			wantArgs:    []any{int64(7)},
		},
		{
			name: "invalid order by falls back to default",
			query: PremisesQuery{
				OrderBy: "nonsense; DROP TABLE premises",
			},
			wantDataHas: []string{"ORDER BY floor ASC, number_of_unit ASC"},
			wantArgs:    []any{int64(7)},
		},
		{
			name: "limit clamped to max",
			query: PremisesQuery{
				Limit: 999999,
			},
			wantDataHas: []string{"LIMIT 5000"},
			wantArgs:    []any{int64(7)},
		},
		{
			name: "negative offset clamped to zero",
			query: PremisesQuery{
				Offset: -10,
			},
			wantDataHas: []string{"OFFSET 0"},
			wantArgs:    []any{int64(7)},
		},
		{
			name: "pagination",
			query: PremisesQuery{
				Limit:  25,
				Offset: 50,
			},
			wantDataHas: []string{"LIMIT 25", "OFFSET 50"},
			wantArgs:    []any{int64(7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dataSQL, countSQL, args := tt.query.ToSQL(7)

			for _, want := range tt.wantDataHas {
				assert.Contains(t, dataSQL, want)
			}
			for _, notWant := range tt.wantDataNotIn {
				assert.NotContains(t, dataSQL, notWant)
			}
			if tt.wantCountSQL != "" {
				assert.Equal(t, tt.wantCountSQL, countSQL)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
