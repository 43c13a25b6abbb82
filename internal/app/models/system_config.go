package models

import "time"

// SystemConfig is a row of the 'system_config' key/value table holding
// operational parameters such as the submission deadline.
type SystemConfig struct {
	ConfigID    int64     `json:"configId" db:"config_id"`
	ConfigKey   string    `json:"configKey" db:"config_key"`
	ConfigValue string    `json:"configValue" db:"config_value"`
	Description *string   `json:"description,omitempty" db:"description"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	UpdatedBy   *int64    `json:"updatedBy,omitempty" db:"updated_by"` // References users.user_id, absent for seeded rows
}
