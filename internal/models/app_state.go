package models

import "time"

// AppState is one persisted collection blob, keyed by collection name.
type AppState struct {
	Key       string    `db:"key" bson:"_id"`
	Value     []byte    `db:"value" bson:"value"`
	UpdatedAt time.Time `db:"updated_at" bson:"updated_at"`
}
