package cart

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

// UpdateQuantityRequest sets the absolute quantity of an existing line. Zero
// removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}
