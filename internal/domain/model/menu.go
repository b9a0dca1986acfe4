package model

import "time"

// MenuCategory groups menu items on the public menu.
type MenuCategory struct {
	ID        int64
	Name      string
	Items     []MenuItem
	CreatedAt time.Time
}

// MenuItem describes a single dish with its current price.
type MenuItem struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
	Price       float64
	ImageURL    string
	InStock     bool
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MenuItemUpdate carries optional fields for partial item updates.
// Nil fields keep the stored value.
type MenuItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *int64
	ImageURL    *string
}
