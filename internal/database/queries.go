/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

const (
	schema = `
	-- Currencies reference table
	CREATE TABLE IF NOT EXISTS currencies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_currencies_active ON currencies(is_active);

	-- USD-based daily rates, one row per currency per day
	CREATE TABLE IF NOT EXISTS historicals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		currency_id INTEGER NOT NULL REFERENCES currencies(id),
		rate TEXT NOT NULL,
		date TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(currency_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_historicals_date ON historicals(date);

	-- Scraped currency metadata
	CREATE TABLE IF NOT EXISTS info (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		currency_id INTEGER NOT NULL UNIQUE REFERENCES currencies(id),
		country_codes TEXT NOT NULL DEFAULT '[]',
		major_unit_name TEXT,
		minor_unit_name TEXT,
		minor_unit_value TEXT,
		banknotes TEXT NOT NULL DEFAULT '{"frequently":[],"rarely":[]}',
		coins TEXT NOT NULL DEFAULT '{"frequently":[],"rarely":[]}',
		overview TEXT,
		central_bank TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	// Currency queries
	queryGetActiveCurrencies = `
		SELECT id, code, name, is_active
		FROM currencies
		WHERE is_active = 1
		ORDER BY code`

	queryGetActiveCurrencyByCode = `
		SELECT id, code, name, is_active
		FROM currencies
		WHERE is_active = 1 AND code = ?`

	queryUpsertCurrency = `
		INSERT INTO currencies (code, name, is_active) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET name = excluded.name, is_active = excluded.is_active`

	// Historical rate queries
	queryGetHistoricalsByDate = `
		SELECT id, currency_id, rate, date, updated_at
		FROM historicals
		WHERE date = ?`

	queryInsertHistorical = `
		INSERT INTO historicals (currency_id, rate, date, updated_at) VALUES (?, ?, ?, ?)`

	queryUpdateHistoricalRate = `
		UPDATE historicals SET rate = ?, updated_at = ? WHERE id = ?`

	// Info queries
	queryGetInfoByCurrency = `
		SELECT id, currency_id, country_codes, major_unit_name, minor_unit_name, minor_unit_value,
		       banknotes, coins, overview, central_bank, updated_at
		FROM info
		WHERE currency_id = ?`

	queryInsertInfo = `
		INSERT INTO info (currency_id, country_codes, major_unit_name, minor_unit_name, minor_unit_value,
		                  banknotes, coins, overview, central_bank, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryUpdateInfo = `
		UPDATE info
		SET country_codes = ?, major_unit_name = ?, minor_unit_name = ?, minor_unit_value = ?,
		    banknotes = ?, coins = ?, overview = ?, central_bank = ?, updated_at = ?
		WHERE currency_id = ?`
)
