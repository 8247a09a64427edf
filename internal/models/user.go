package models

import "time"

// User represents a registered customer. Email is the deduplication key.
type User struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" bson:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name      string    `json:"name" bson:"name" validate:"omitempty,max=100"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	PhotoURL  string    `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
