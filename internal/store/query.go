package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 500
	maxLimit     = 5000

	orderByFloor  = "floor"
	orderByNumber = "number"
	orderByPrice  = "price_per_meter"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByFloor:  "floor ASC, number_of_unit ASC",
	orderByNumber: "number ASC",
	orderByPrice:  "price_per_meter DESC",
}

const defaultOrderBy = "floor ASC, number_of_unit ASC"

const basePremisesSelect = `SELECT id, reo_id, premises_id, property_type, number, number_of_unit,
	entrance, floor, layout_type,
	full_price, total_area_m2, estimated_area_m2, price_per_meter,
	number_of_rooms, living_area_m2, kitchen_area_m2, COALESCE(view_from_window, ''),
	number_of_levels, number_of_loggias, number_of_balconies,
	number_of_bathrooms_with_toilets, number_of_separate_bathrooms,
	number_of_terraces, studio,
	status, sales_amount, COALESCE(customcontent, '{}'),
	created_at, updated_at
FROM premises`

const countPremisesSelect = "SELECT COUNT(*) FROM premises"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a premises
// query scoped to one object. It returns two SQL strings (one for the data
// query, one for the count query) and the positional parameters. The object
// id is always the first parameter.
func (q *PremisesQuery) ToSQL(reoID int64) (dataSQL, countSQL string, args []any) {
	conditions := []string{"reo_id = $1"}
	args = append(args, reoID)
	paramIdx := 2

	if q.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", paramIdx))
		args = append(args, *q.Status)
		paramIdx++
	}

	if q.Entrance != nil {
		conditions = append(conditions, fmt.Sprintf("entrance = $%d", paramIdx))
		args = append(args, *q.Entrance)
		paramIdx++
	}

	if q.LayoutType != nil {
		conditions = append(conditions, fmt.Sprintf("layout_type = $%d", paramIdx))
		args = append(args, *q.LayoutType)
		paramIdx++
	}

	if q.MinFloor != nil {
		conditions = append(conditions, fmt.Sprintf("floor >= $%d", paramIdx))
		args = append(args, *q.MinFloor)
		paramIdx++
	}

	if q.MaxFloor != nil {
		conditions = append(conditions, fmt.Sprintf("floor <= $%d", paramIdx))
		args = append(args, *q.MaxFloor)
		paramIdx++
	}

	if q.MinAreaM2 != nil {
		conditions = append(conditions, fmt.Sprintf("total_area_m2 >= $%d", paramIdx))
		args = append(args, *q.MinAreaM2)
		paramIdx++
	}

	if q.MaxAreaM2 != nil {
		conditions = append(conditions, fmt.Sprintf("total_area_m2 <= $%d", paramIdx))
		args = append(args, *q.MaxAreaM2)
		paramIdx++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	// Order by
	orderClause := defaultOrderBy
	if q.OrderBy != "" {
		if col, ok := validOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	// Limit
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		basePremisesSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countPremisesSelect + whereClause

	return dataSQL, countSQL, args
}
