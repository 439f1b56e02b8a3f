package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_products",
		SQL: `CREATE TABLE IF NOT EXISTS products (
  id          UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  name        TEXT          NOT NULL,
  description TEXT,
  price_sar   NUMERIC(12,2) NOT NULL CHECK (price_sar > 0),
  image_url   TEXT,
  is_active   BOOLEAN       NOT NULL DEFAULT TRUE,
  created_at  TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_orders",
		SQL: `CREATE TABLE IF NOT EXISTS orders (
  id             UUID          PRIMARY KEY,
  status         TEXT          NOT NULL DEFAULT 'pending_payment',
  total_sar      NUMERIC(12,2) NOT NULL CHECK (total_sar >= 0),
  customer_name  TEXT          NOT NULL,
  customer_phone TEXT          NOT NULL,
  address_text   TEXT          NOT NULL,
  created_at     TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_order_items",
		SQL: `CREATE TABLE IF NOT EXISTS order_items (
  id         UUID          PRIMARY KEY,
  order_id   UUID          NOT NULL REFERENCES orders (id),
  product_id UUID          NOT NULL REFERENCES products (id),
  qty        INTEGER       NOT NULL CHECK (qty >= 1),
  price_sar  NUMERIC(12,2) NOT NULL
);`,
	},
	{
		Name: "create_table_payment_proofs",
		SQL: `CREATE TABLE IF NOT EXISTS payment_proofs (
  id         UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  order_id   UUID          NOT NULL UNIQUE REFERENCES orders (id),
  file_path  TEXT          NOT NULL,
  amount_sar NUMERIC(12,2),
  note       TEXT,
  status     TEXT          NOT NULL DEFAULT 'submitted',
  created_at TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_products_is_active",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_products_is_active ON products (is_active);`,
	},
	{
		Name: "create_index_orders_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);`,
	},
	{
		Name: "create_index_orders_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at);`,
	},
	{
		Name: "create_index_order_items_order_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id);`,
	},
}

// EnsureMigrated checks if the 'orders' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.orders') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
