package add_blackout

// AddBlackoutRequest HTTP request model
type AddBlackoutRequest struct {
	Date   string  `json:"date" validate:"required"` // "2025-12-01"
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}
