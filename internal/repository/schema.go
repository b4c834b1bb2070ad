package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements are idempotent; cmd/migrate runs them in order.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		email VARCHAR(100) NOT NULL,
		full_name VARCHAR(100) NOT NULL,
		total_price DECIMAL(10,2) NOT NULL,
		address VARCHAR(255),
		city VARCHAR(100),
		state VARCHAR(100),
		pincode VARCHAR(20),
		phone VARCHAR(20),
		created_at TIMESTAMP DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id INT NOT NULL REFERENCES orders(id),
		title VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		quantity INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL,
		subject VARCHAR(200),
		message TEXT NOT NULL,
		status VARCHAR(20) DEFAULT 'New',
		created_at TIMESTAMP DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sellers (
		id SERIAL PRIMARY KEY,
		fullname VARCHAR(255) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		store_name VARCHAR(255),
		store_description TEXT,
		status VARCHAR(50) DEFAULT 'Pending',
		created_at TIMESTAMP DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL,
		category VARCHAR(100),
		image VARCHAR(500),
		seller_email VARCHAR(100) NOT NULL REFERENCES sellers(email),
		seller_name VARCHAR(255),
		status VARCHAR(20) DEFAULT 'draft',
		created_at TIMESTAMP DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS product_activity_log (
		id SERIAL PRIMARY KEY,
		product_id INT,
		seller_email VARCHAR(100) NOT NULL REFERENCES sellers(email),
		seller_name VARCHAR(255),
		action VARCHAR(50) NOT NULL,
		product_title VARCHAR(255),
		old_data TEXT,
		new_data TEXT,
		created_at TIMESTAMP DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS seller_status_changes (
		id SERIAL PRIMARY KEY,
		seller_id INT NOT NULL REFERENCES sellers(id),
		seller_email VARCHAR(100) NOT NULL,
		seller_name VARCHAR(255),
		store_name VARCHAR(255),
		old_status VARCHAR(50),
		new_status VARCHAR(50),
		email_sent BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS email_logs (
		id UUID PRIMARY KEY,
		recipient_email VARCHAR(100) NOT NULL,
		subject VARCHAR(255),
		email_type VARCHAR(50) NOT NULL,
		delivery_status VARCHAR(20) NOT NULL,
		error_message TEXT,
		sent_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_seller_email ON product_activity_log(seller_email)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_product_id ON product_activity_log(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_created_at ON product_activity_log(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_products_seller ON products(seller_email)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email)`,
	`CREATE INDEX IF NOT EXISTS idx_status_changes_unsent ON seller_status_changes(email_sent) WHERE email_sent = FALSE`,
}

func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
