package dto

// MenuItemRequest describes a new dish.
type MenuItemRequest struct {
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

// MenuItemUpdateRequest carries optional fields; absent fields keep the
// stored value.
type MenuItemUpdateRequest struct {
	CategoryID  *int64   `json:"category_id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
}

// MenuItemResponse is the public view of a dish.
type MenuItemResponse struct {
	ID          int64   `json:"id"`
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	InStock     bool    `json:"in_stock"`
}

// MenuCategoryResponse groups dishes on the public menu.
type MenuCategoryResponse struct {
	ID    int64              `json:"id"`
	Name  string             `json:"name"`
	Items []MenuItemResponse `json:"items"`
}
