package kvstore

import (
	"context"
	"time"
)

// Store is a flat string key-value storage.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Entry struct {
	Key       string    `json:"key" gorm:"column:storage_key;primaryKey"`
	Value     string    `json:"value" gorm:"column:value;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Entry) TableName() string {
	return "kv_entries"
}
