package storage

import "time"

// Snapshot keys, one per persisted store. Absence of a key means the owning
// store falls back to its default on startup.
const (
	KeyTheme = "theme"
	KeyUser  = "user"
	KeyCart  = "cart"
)

// Snapshot is one persisted key-value entry. Values are strings; the cart and
// user entries hold JSON, the theme entry holds the literal "dark" or "light".
type Snapshot struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the snapshot table created by the goose migration.
func (Snapshot) TableName() string {
	return "snapshots"
}
