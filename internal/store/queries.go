package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Real-estate object queries.
const (
	queryCreateObject = `
		INSERT INTO real_estate_objects (
			name, status, current_price_per_sqm, oversold_method,
			created_at, updated_at
		) VALUES (
			@name, @status, @current_price_per_sqm, @oversold_method,
			now(), now()
		)
		RETURNING id, created_at, updated_at`

	queryGetObject = `
		SELECT id, name, status, current_price_per_sqm, oversold_method,
			created_at, updated_at
		FROM real_estate_objects
		WHERE id = $1`

	queryListObjects = `
		SELECT id, name, status, current_price_per_sqm, oversold_method,
			created_at, updated_at
		FROM real_estate_objects
		ORDER BY created_at DESC`

	queryUpdateObject = `
		UPDATE real_estate_objects SET
			name = @name,
			status = @status,
			current_price_per_sqm = @current_price_per_sqm,
			oversold_method = @oversold_method,
			updated_at = now()
		WHERE id = @id`

	queryDeleteObject = `
		DELETE FROM real_estate_objects WHERE id = $1`
)

// Premises queries.
const (
	queryUpsertPremises = `
		INSERT INTO premises (
			reo_id, premises_id, property_type, number, number_of_unit,
			entrance, floor, layout_type,
			full_price, total_area_m2, estimated_area_m2, price_per_meter,
			number_of_rooms, living_area_m2, kitchen_area_m2, view_from_window,
			number_of_levels, number_of_loggias, number_of_balconies,
			number_of_bathrooms_with_toilets, number_of_separate_bathrooms,
			number_of_terraces, studio,
			status, sales_amount, customcontent,
			created_at, updated_at
		) VALUES (
			@reo_id, @premises_id, @property_type, @number, @number_of_unit,
			@entrance, @floor, @layout_type,
			@full_price, @total_area_m2, @estimated_area_m2, @price_per_meter,
			@number_of_rooms, @living_area_m2, @kitchen_area_m2, @view_from_window,
			@number_of_levels, @number_of_loggias, @number_of_balconies,
			@number_of_bathrooms_with_toilets, @number_of_separate_bathrooms,
			@number_of_terraces, @studio,
			@status, @sales_amount, @customcontent,
			now(), now()
		)
		ON CONFLICT (reo_id, premises_id) DO UPDATE SET
			property_type = EXCLUDED.property_type,
			number = EXCLUDED.number,
			number_of_unit = EXCLUDED.number_of_unit,
			entrance = EXCLUDED.entrance,
			floor = EXCLUDED.floor,
			layout_type = EXCLUDED.layout_type,
			full_price = EXCLUDED.full_price,
			total_area_m2 = EXCLUDED.total_area_m2,
			estimated_area_m2 = EXCLUDED.estimated_area_m2,
			price_per_meter = EXCLUDED.price_per_meter,
			number_of_rooms = EXCLUDED.number_of_rooms,
			living_area_m2 = EXCLUDED.living_area_m2,
			kitchen_area_m2 = EXCLUDED.kitchen_area_m2,
			view_from_window = EXCLUDED.view_from_window,
			number_of_levels = EXCLUDED.number_of_levels,
			number_of_loggias = EXCLUDED.number_of_loggias,
			number_of_balconies = EXCLUDED.number_of_balconies,
			number_of_bathrooms_with_toilets = EXCLUDED.number_of_bathrooms_with_toilets,
			number_of_separate_bathrooms = EXCLUDED.number_of_separate_bathrooms,
			number_of_terraces = EXCLUDED.number_of_terraces,
			studio = EXCLUDED.studio,
			status = EXCLUDED.status,
			sales_amount = EXCLUDED.sales_amount,
			customcontent = EXCLUDED.customcontent,
			updated_at = now()
		RETURNING id, created_at, updated_at`

	queryUpdatePremisesPrice = `
		UPDATE premises SET price_per_meter = $2, updated_at = now()
		WHERE id = $1`

	queryUpdatePremisesStatus = `
		UPDATE premises SET status = $2, updated_at = now()
		WHERE id = $1`
)

// Income plan queries.
const (
	queryDeleteIncomePlans = `
		DELETE FROM income_plans WHERE reo_id = $1`

	queryInsertIncomePlan = `
		INSERT INTO income_plans (
			reo_id, property_type, period_begin, period_end,
			area, planned_sales_revenue, price_per_sqm, price_per_sqm_end
		) VALUES (
			@reo_id, @property_type, @period_begin, @period_end,
			@area, @planned_sales_revenue, @price_per_sqm, @price_per_sqm_end
		)
		RETURNING id`

	queryListIncomePlans = `
		SELECT id, reo_id, property_type, period_begin, period_end,
			area, planned_sales_revenue, price_per_sqm, price_per_sqm_end
		FROM income_plans
		WHERE reo_id = $1
		ORDER BY period_begin ASC`
)

// Pricing config queries.
const (
	queryAppendPricingConfig = `
		INSERT INTO pricing_configs (reo_id, content, created_at)
		VALUES ($1, $2, now())
		RETURNING id, created_at`

	queryListPricingConfigs = `
		SELECT id, reo_id, content, created_at
		FROM pricing_configs
		WHERE reo_id = $1
		ORDER BY id ASC`
)

// Distribution config queries.
const (
	queryCreateDistributionConfig = `
		INSERT INTO distribution_configs (name, function_type, params, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, created_at`

	queryGetDistributionConfig = `
		SELECT id, name, function_type, params, created_at
		FROM distribution_configs
		WHERE id = $1`

	queryListDistributionConfigs = `
		SELECT id, name, function_type, params, created_at
		FROM distribution_configs
		ORDER BY id ASC`
)
