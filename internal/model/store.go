package model

import "time"

// Store is a rateable shop, optionally associated with an owner account.
type Store struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:60;not null;index"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Address   string    `json:"address" gorm:"size:400"`
	OwnerID   *uint     `json:"owner_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner *User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
}

// TableName pins the table name.
func (Store) TableName() string {
	return "stores"
}
