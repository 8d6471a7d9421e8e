package models

import (
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// BlackoutResponse ответ с закрытой датой
type BlackoutResponse struct {
	ID        int64     `json:"id"`
	PackageID int64     `json:"packageId"`
	Date      string    `json:"date"` // "2025-12-01"
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlackoutListResponse ответ со списком закрытых дат
type BlackoutListResponse struct {
	Blackouts []BlackoutResponse `json:"blackouts"`
}

// FromDomainBlackout конвертирует domain модель в DTO
func FromDomainBlackout(b *domain.Blackout) *BlackoutResponse {
	if b == nil {
		return nil
	}
	return &BlackoutResponse{
		ID:        b.ID,
		PackageID: b.PackageID,
		Date:      domain.DateKey(b.Date),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlackoutList конвертирует список domain моделей в DTO
func FromDomainBlackoutList(list []*domain.Blackout) *BlackoutListResponse {
	resp := &BlackoutListResponse{
		Blackouts: make([]BlackoutResponse, 0, len(list)),
	}
	for _, b := range list {
		if item := FromDomainBlackout(b); item != nil {
			resp.Blackouts = append(resp.Blackouts, *item)
		}
	}
	return resp
}
