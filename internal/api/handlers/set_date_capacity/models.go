package set_date_capacity

import (
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// SetDateCapacityRequest HTTP request model
type SetDateCapacityRequest struct {
	TotalSlots int `json:"totalSlots" validate:"gte=0"`
}

// DateCapacityResponse HTTP response model
type DateCapacityResponse struct {
	PackageID      int64  `json:"packageId"`
	Date           string `json:"date"`
	TotalSlots     int    `json:"totalSlots"`
	BookedSlots    int    `json:"bookedSlots"`
	AvailableSlots int    `json:"availableSlots"`
}

// FromDomain конвертирует domain модель в DTO
func FromDomain(o *domain.DateOverride) *DateCapacityResponse {
	return &DateCapacityResponse{
		PackageID:      o.PackageID,
		Date:           domain.DateKey(o.Date),
		TotalSlots:     o.TotalSlots,
		BookedSlots:    o.BookedSlots,
		AvailableSlots: domain.CapacityFromOverride(o).AvailableSlots(),
	}
}
