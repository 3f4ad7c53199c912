package types

// StoreBackend identifies the catalog persistence backend.
type StoreBackend string

const (
	BackendJSON   StoreBackend = "json"
	BackendSQLite StoreBackend = "sqlite"
)

// StoreConfig holds settings for catalog persistence.
type StoreConfig struct {
	// DataDir holds config.json, cleancore.db, user_settings.json and phrases.json.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Backend selects json or sqlite storage (default json).
	Backend StoreBackend `json:"backend" yaml:"backend"`

	// SQLiteDriver is the database/sql driver name for the sqlite backend:
	// "sqlite3" (mattn/go-sqlite3, cgo) or "sqlite" (modernc.org/sqlite).
	SQLiteDriver string `json:"sqlite_driver" yaml:"sqlite_driver"`
}

// AppConfig groups all cleancore settings resolved from flags, env and file.
type AppConfig struct {
	Store StoreConfig `json:"store" yaml:"store"`

	// Mode is the default collect mode for extract.
	Mode CollectMode `json:"mode" yaml:"mode"`

	// Clipboard controls whether extract copies to the system clipboard.
	Clipboard bool `json:"clipboard" yaml:"clipboard"`
}
