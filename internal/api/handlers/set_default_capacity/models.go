package set_default_capacity

import (
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// SetDefaultCapacityRequest HTTP request model
type SetDefaultCapacityRequest struct {
	TotalSlots int `json:"totalSlots" validate:"gte=0"`
}

// DefaultCapacityResponse HTTP response model
type DefaultCapacityResponse struct {
	PackageID  int64     `json:"packageId"`
	TotalSlots int       `json:"totalSlots"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FromDomain конвертирует domain модель в DTO
func FromDomain(d *domain.DefaultAvailability) *DefaultCapacityResponse {
	return &DefaultCapacityResponse{
		PackageID:  d.PackageID,
		TotalSlots: d.TotalSlots,
		UpdatedAt:  d.UpdatedAt,
	}
}
