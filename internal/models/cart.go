package models

import "time"

// CartLine is one item entry in a cart, keyed by ItemID.
type CartLine struct {
	ItemID   string  `json:"itemId" bson:"itemId" validate:"required"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Name     string  `json:"name,omitempty" bson:"name,omitempty"`
	Price    float64 `json:"price,omitempty" bson:"price,omitempty"`
	Image    string  `json:"image,omitempty" bson:"image,omitempty"`
	Category string  `json:"category,omitempty" bson:"category,omitempty"`
}

// Cart is the per-user shopping cart. A stored cart always has at least one line.
type Cart struct {
	ID        string     `json:"_id,omitempty" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"userId" bson:"userId" gorm:"uniqueIndex;type:varchar(64)"`
	Items     []CartLine `json:"items" bson:"items" gorm:"serializer:json"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
}

// EmptyCart returns the canonical zero-line cart handed out when a user has no stored cart.
func EmptyCart() *Cart {
	return &Cart{Items: []CartLine{}}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// LineIndex returns the position of the line for itemID, or -1.
func (c *Cart) LineIndex(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no line storage with c.
func (c Cart) Clone() Cart {
	c.Items = append([]CartLine(nil), c.Items...)
	if c.Items == nil {
		c.Items = []CartLine{}
	}
	return c
}
