package models

// BookingStatus represents the state of a booking. The simulated checkout only confirms.
type BookingStatus string

const BookingConfirmed BookingStatus = "confirmed"

// DefaultBookingID is shown on the confirmation view when no checkout happened in this session
const DefaultBookingID = "ZM-52912"

// Booking represents a confirmed reservation produced by the simulated checkout
type Booking struct {
	ID          string        `json:"id"`
	RetreatID   string        `json:"retreatId"`
	UserID      string        `json:"userId"`
	Date        string        `json:"date"`
	Status      BookingStatus `json:"status"`
	TotalAmount int           `json:"totalAmount"`
	GuestCount  int           `json:"guestCount"`
}

// CheckoutRequest carries the checkout form. Card fields are only checked for presence.
type CheckoutRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	CardNumber string `json:"cardNumber" validate:"required"`
	Expiry     string `json:"expiry" validate:"required"`
	CVC        string `json:"cvc" validate:"required"`
}

// BookingConfirmation is returned after a successful simulated payment
type BookingConfirmation struct {
	BookingIDs []string  `json:"bookingIds"`
	Bookings   []Booking `json:"bookings"`
	Subtotal   int       `json:"subtotal"`
	ServiceFee int       `json:"serviceFee"`
	Total      int       `json:"total"`
}
