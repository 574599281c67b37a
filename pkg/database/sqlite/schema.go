package sqlite

import "github.com/jmoiron/sqlx"

// InitSchema creates the four marketplace tables if they do not exist.
// Nested location/farm/quality/stats objects are flattened into prefixed
// columns; images and certifications are stored as JSON text. The
// FOREIGN KEY clauses document the relationships only — enforcement is
// off, so deletes never cascade or fail on referencing rows.
func InitSchema(db *sqlx.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('farmer', 'customer', 'admin', 'superadmin')),
			phone TEXT,
			avatar TEXT,
			location_lat REAL,
			location_lng REAL,
			location_address TEXT,
			farm_name TEXT,
			farm_description TEXT,
			farm_certifications TEXT,
			farm_established_year INTEGER,
			stats_total_orders INTEGER DEFAULT 0,
			stats_rating REAL DEFAULT 0,
			stats_total_revenue REAL DEFAULT 0,
			is_active BOOLEAN DEFAULT 1,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			farmer_id TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL CHECK (category IN ('chicken', 'eggs', 'manure')),
			price REAL NOT NULL,
			unit TEXT NOT NULL,
			description TEXT NOT NULL,
			images TEXT,
			stock INTEGER NOT NULL DEFAULT 0,
			quality_rating REAL DEFAULT 0,
			quality_reviews INTEGER DEFAULT 0,
			quality_organic BOOLEAN DEFAULT 0,
			quality_freshness INTEGER DEFAULT 100,
			location_lat REAL,
			location_lng REAL,
			location_address TEXT,
			is_active BOOLEAN DEFAULT 1,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (farmer_id) REFERENCES users (id)
		)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			customer_phone TEXT NOT NULL,
			farmer_id TEXT NOT NULL,
			total REAL NOT NULL,
			status TEXT NOT NULL CHECK (status IN ('pending', 'confirmed', 'shipped', 'delivered', 'cancelled')),
			delivery_address TEXT NOT NULL,
			estimated_delivery TEXT,
			notes TEXT,
			created_at TEXT NOT NULL,
			FOREIGN KEY (customer_id) REFERENCES users (id),
			FOREIGN KEY (farmer_id) REFERENCES users (id)
		)`,

		`CREATE TABLE IF NOT EXISTS order_items (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			price REAL NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders (id),
			FOREIGN KEY (product_id) REFERENCES products (id)
		)`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}
