package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/wheeltracker/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	// sqlite allows a single writer; serialize access through one connection.
	db.SetMaxOpenConns(1)

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS campaigns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		symbol TEXT NOT NULL,
		created_at TEXT NOT NULL,
		target_exit_price REAL
	);

	CREATE TABLE IF NOT EXISTS option_trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		campaign TEXT NOT NULL,
		action TEXT NOT NULL,
		strike REAL NOT NULL,
		delta REAL NOT NULL,
		expiration_date TEXT NOT NULL,
		date_of_action TEXT NOT NULL,
		number_of_shares INTEGER NOT NULL,
		credit REAL NOT NULL,
		hash_id TEXT
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_option_trades_hash ON option_trades(hash_id);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}

	migrateTradeTable()

	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

// migrateTradeTable adds columns introduced after the first release to
// databases created by older builds.
func migrateTradeTable() {
	rows, err := DB.Query("PRAGMA table_info(option_trades)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for option_trades", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for option_trades: %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}

		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for option_trades", "error", err)
			} else {
				stdlog.Printf("Error scanning column info for option_trades: %v", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for option_trades", "error", err)
		} else {
			stdlog.Printf("Error iterating over column info for option_trades: %v", err)
		}
		return
	}

	if _, ok := columnExists["hash_id"]; !ok {
		_, err := DB.Exec("ALTER TABLE option_trades ADD COLUMN hash_id TEXT")
		if err != nil {
			if logger.L != nil {
				logger.L.Error("Error adding 'hash_id' column to 'option_trades' table", "error", err)
			}
		} else if logger.L != nil {
			logger.L.Info("Added 'hash_id' column to 'option_trades' table")
		}
	}

	if _, ok := columnExists["delta"]; !ok {
		_, err := DB.Exec("ALTER TABLE option_trades ADD COLUMN delta REAL NOT NULL DEFAULT 0")
		if err != nil {
			if logger.L != nil {
				logger.L.Error("Error adding 'delta' column to 'option_trades' table", "error", err)
			}
		} else if logger.L != nil {
			logger.L.Info("Added 'delta' column to 'option_trades' table")
		}
	}
}
