package models

// CartItem represents a pending selection of one retreat, date and guest count.
// Retreat points into the catalog and is shared, never copied or mutated.
type CartItem struct {
	ID           string   `json:"id"`
	Retreat      *Retreat `json:"retreat"`
	SelectedDate string   `json:"selectedDate"`
	Guests       int      `json:"guests"`
}

// Subtotal returns the retreat price multiplied by the guest count
func (i CartItem) Subtotal() int {
	if i.Retreat == nil {
		return 0
	}
	return i.Retreat.Price * i.Guests
}

// CartSummary is the derived view of a cart
type CartSummary struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	Subtotal   int        `json:"subtotal"`
	ServiceFee int        `json:"serviceFee"`
	Total      int        `json:"total"`
}

// AddToCartRequest is the body accepted when adding a retreat to the cart
type AddToCartRequest struct {
	RetreatID    string `json:"retreatId" validate:"required"`
	SelectedDate string `json:"selectedDate" validate:"required"`
	Guests       int    `json:"guests" validate:"required,min=1,max=50"`
}
