package domain

// Package бронируемый пакет услуг планировщика.
// Данные приходят из каталога пакетов и ядром не изменяются.
type Package struct {
	ID              int64
	PlannerID       int64
	Title           string
	Price           *float64
	IsActive        bool
	PreparationDays int
}

// IsBookable пакет существует и активен
func (p *Package) IsBookable() bool {
	return p != nil && p.IsActive
}

// IsOwnedBy возвращает true, если пакет принадлежит планировщику
func (p *Package) IsOwnedBy(userID int64) bool {
	return p != nil && p.PlannerID == userID
}
