package models

import (
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// VerdictResponse ответ с доступностью пакета на дату
type VerdictResponse struct {
	Date                string `json:"date"` // "2025-12-01"
	Status              string `json:"status"`
	Available           bool   `json:"available"`
	Reason              string `json:"reason,omitempty"`
	TotalSlots          *int   `json:"totalSlots,omitempty"`
	BookedSlots         *int   `json:"bookedSlots,omitempty"`
	AvailableSlots      *int   `json:"availableSlots,omitempty"`
	IsBlocked           bool   `json:"isBlocked"`
	IsPreparationPeriod bool   `json:"isPreparationPeriod"`
}

// RangeResponse календарь доступности, ключ - дата
type RangeResponse struct {
	PackageID int64                      `json:"packageId"`
	StartDate string                     `json:"startDate"`
	EndDate   string                     `json:"endDate"`
	Dates     map[string]VerdictResponse `json:"dates"`
}

// UpcomingResponse ближайшие доступные даты
type UpcomingResponse struct {
	PackageID int64             `json:"packageId"`
	Dates     []VerdictResponse `json:"dates"`
}

// FromVerdict конвертирует вердикт в DTO. Счетчики слотов заполняются
// только когда решение принято по емкости.
func FromVerdict(v domain.Verdict) VerdictResponse {
	resp := VerdictResponse{
		Date:                domain.DateKey(v.Date),
		Status:              string(v.Status),
		Available:           v.Available,
		Reason:              v.Reason,
		IsBlocked:           v.IsBlocked,
		IsPreparationPeriod: v.IsPreparationPeriod,
	}

	if v.Status == domain.AvailabilityAvailable || v.Status == domain.AvailabilityExhausted {
		total, booked, available := v.TotalSlots, v.BookedSlots, v.AvailableSlots
		resp.TotalSlots = &total
		resp.BookedSlots = &booked
		resp.AvailableSlots = &available
	}

	return resp
}

// FromCalendar конвертирует календарь в DTO
func FromCalendar(packageID int64, c domain.Calendar) *RangeResponse {
	resp := &RangeResponse{
		PackageID: packageID,
		Dates:     make(map[string]VerdictResponse, len(c)),
	}

	dates := c.Dates()
	if len(dates) > 0 {
		resp.StartDate = dates[0]
		resp.EndDate = dates[len(dates)-1]
	}
	for _, key := range dates {
		resp.Dates[key] = FromVerdict(c[key])
	}

	return resp
}

// FromVerdictList конвертирует список вердиктов в DTO
func FromVerdictList(packageID int64, verdicts []domain.Verdict) *UpcomingResponse {
	resp := &UpcomingResponse{
		PackageID: packageID,
		Dates:     make([]VerdictResponse, 0, len(verdicts)),
	}
	for _, v := range verdicts {
		resp.Dates = append(resp.Dates, FromVerdict(v))
	}
	return resp
}
