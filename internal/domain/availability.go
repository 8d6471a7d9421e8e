package domain

import (
	"sort"
	"time"
)

// AvailabilityStatus итог проверки доступности даты
type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
	AvailabilityBlocked     AvailabilityStatus = "blocked"
	AvailabilityPreparation AvailabilityStatus = "preparation"
	AvailabilityExhausted   AvailabilityStatus = "exhausted"
)

// Verdict результат проверки доступности пакета на дату
type Verdict struct {
	Date                time.Time
	Status              AvailabilityStatus
	Available           bool
	Reason              string
	TotalSlots          int
	BookedSlots         int
	AvailableSlots      int
	IsBlocked           bool
	IsPreparationPeriod bool
}

// Rejection переводит отрицательный вердикт в ошибку нужного вида.
// Для доступной даты возвращает nil.
func (v Verdict) Rejection() error {
	switch v.Status {
	case AvailabilityAvailable:
		return nil
	case AvailabilityUnavailable:
		return Reject(ErrNotFound, v.Reason)
	case AvailabilityBlocked:
		return Reject(ErrBlackout, v.Reason)
	case AvailabilityPreparation:
		return Reject(ErrPreparationConflict, v.Reason)
	default:
		return Reject(ErrCapacityExceeded, v.Reason)
	}
}

// Calendar вердикты по датам, ключ - дата в формате YYYY-MM-DD
type Calendar map[string]Verdict

// Dates отсортированные ключи календаря
func (c Calendar) Dates() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Verdicts вердикты в порядке возрастания даты
func (c Calendar) Verdicts() []Verdict {
	result := make([]Verdict, 0, len(c))
	for _, k := range c.Dates() {
		result = append(result, c[k])
	}
	return result
}
