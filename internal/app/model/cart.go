package model

import (
	"time"
)

// CartSnapshot is the persisted form of one cart: the full serialized state under
// its cart key. Every write replaces the payload.
type CartSnapshot struct {
	Key       string    `gorm:"primarykey;column:cart_key;type:varchar(100)" json:"key"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
