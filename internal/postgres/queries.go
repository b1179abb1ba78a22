package postgres

const (
	schema = `
	CREATE TABLE IF NOT EXISTS currencies (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS historicals (
		id BIGSERIAL PRIMARY KEY,
		currency_id BIGINT NOT NULL REFERENCES currencies(id),
		rate NUMERIC NOT NULL,
		date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (currency_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_historicals_date ON historicals(date);

	CREATE TABLE IF NOT EXISTS info (
		id BIGSERIAL PRIMARY KEY,
		currency_id BIGINT NOT NULL UNIQUE REFERENCES currencies(id),
		country_codes JSONB NOT NULL DEFAULT '[]',
		major_unit_name TEXT,
		minor_unit_name TEXT,
		minor_unit_value NUMERIC,
		banknotes JSONB NOT NULL DEFAULT '{"frequently":[],"rarely":[]}',
		coins JSONB NOT NULL DEFAULT '{"frequently":[],"rarely":[]}',
		overview TEXT,
		central_bank TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	queryGetActiveCurrencies = `
		SELECT id, code, name, is_active
		FROM currencies
		WHERE is_active = TRUE
		ORDER BY code`

	queryGetActiveCurrencyByCode = `
		SELECT id, code, name, is_active
		FROM currencies
		WHERE is_active = TRUE AND code = $1`

	queryUpsertCurrency = `
		INSERT INTO currencies (code, name, is_active) VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, is_active = EXCLUDED.is_active`

	// rates and dates travel as text so decimals never pass through float64
	queryGetHistoricalsByDate = `
		SELECT id, currency_id, rate::text, to_char(date, 'YYYY-MM-DD'), updated_at
		FROM historicals
		WHERE date = $1::date`

	queryUpdateHistoricalRate = `
		UPDATE historicals SET rate = $1::numeric, updated_at = NOW() WHERE id = $2`

	queryGetInfoByCurrency = `
		SELECT id, currency_id, country_codes::text, major_unit_name, minor_unit_name, minor_unit_value::text,
		       banknotes::text, coins::text, overview, central_bank, updated_at
		FROM info
		WHERE currency_id = $1`

	queryInsertInfo = `
		INSERT INTO info (currency_id, country_codes, major_unit_name, minor_unit_name, minor_unit_value,
		                  banknotes, coins, overview, central_bank)
		VALUES ($1, $2::jsonb, $3, $4, $5::numeric, $6::jsonb, $7::jsonb, $8, $9)`

	queryUpdateInfo = `
		UPDATE info
		SET country_codes = $2::jsonb, major_unit_name = $3, minor_unit_name = $4, minor_unit_value = $5::numeric,
		    banknotes = $6::jsonb, coins = $7::jsonb, overview = $8, central_bank = $9, updated_at = NOW()
		WHERE currency_id = $1`
)
