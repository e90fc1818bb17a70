package model

import "time"

// Record is a named JSON document kept by the SQL persistence backend.
type Record struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Record) TableName() string {
	return "kv_records"
}
