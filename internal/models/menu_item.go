package models

import "time"

// MenuItem represents a dish on the restaurant menu.
type MenuItem struct {
	ID          string    `json:"_id,omitempty" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" bson:"name" validate:"required,max=100"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty" gorm:"index"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// MenuItemUpdate carries the fields of a partial menu update. Nil fields are left untouched.
type MenuItemUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether the update sets no field at all.
func (u MenuItemUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Image == nil && u.Category == nil && u.Price == nil
}

// Apply copies every supplied field onto item.
func (u MenuItemUpdate) Apply(item *MenuItem) {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Description != nil {
		item.Description = *u.Description
	}
	if u.Image != nil {
		item.Image = *u.Image
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	if u.Price != nil {
		item.Price = *u.Price
	}
}
