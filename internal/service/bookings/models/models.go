package models

import (
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// Request модели

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	UserID   int64   `json:"userId"`
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetPackageBookingsRequest запрос на получение бронирований пакета
type GetPackageBookingsRequest struct {
	UserID           int64      `json:"userId"`
	PackageID        int64      `json:"packageId"`
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPackageBookingsRequest) ToDomainFilter() (domain.PackageBookingsFilter, error) {
	filter := domain.PackageBookingsFilter{
		PackageID:        r.PackageID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.StartDate != nil && r.EndDate != nil && domain.DateOnly(*r.EndDate).Before(domain.DateOnly(*r.StartDate)) {
		return filter, domain.Reject(domain.ErrInvalidInput, "endDate must not be before startDate")
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	PackageID   int64   `json:"packageId"`
	ClientID    int64   `json:"clientId"`
	WeddingDate string  `json:"weddingDate"`           // "2025-12-01"
	WeddingTime *string `json:"weddingTime,omitempty"` // "16:30"
	Location    string  `json:"location"`
	Notes       *string `json:"notes,omitempty"`
	Status      string  `json:"status"`
	StatusNote  *string `json:"statusNote,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		PackageID:          b.PackageID,
		ClientID:           b.ClientID,
		WeddingDate:        b.WeddingDate.Format(domain.DateFormat),
		Location:           b.Location,
		Notes:              b.Notes,
		Status:             string(b.Status),
		StatusNote:         b.StatusNote,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.WeddingTime != nil {
		t := b.WeddingTime.String()
		resp.WeddingTime = &t
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", domain.Reject(domain.ErrInvalidInput, "invalid booking status: "+status)
	}
	return s, nil
}
