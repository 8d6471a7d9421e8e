package packageservice

import "github.com/m04kA/SMC-PlannerBookingService/internal/domain"

// Package модель пакета из каталога
type Package struct {
	ID              int64    `json:"id"`
	PlannerID       int64    `json:"planner_id"`
	Title           string   `json:"title"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        bool     `json:"is_active"`
	PreparationDays int      `json:"preparation_days"`
}

// ToDomain конвертирует ответ каталога в доменную модель
func (p *Package) ToDomain() *domain.Package {
	prep := p.PreparationDays
	if prep < 0 {
		prep = 0
	}
	return &domain.Package{
		ID:              p.ID,
		PlannerID:       p.PlannerID,
		Title:           p.Title,
		Price:           p.Price,
		IsActive:        p.IsActive,
		PreparationDays: prep,
	}
}
