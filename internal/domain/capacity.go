package domain

import "time"

// DefaultAvailability емкость пакета по умолчанию
type DefaultAvailability struct {
	PackageID  int64
	TotalSlots int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DateOverride емкость пакета на конкретную дату.
// Инвариант: 0 <= BookedSlots <= TotalSlots
type DateOverride struct {
	PackageID   int64
	Date        time.Time
	TotalSlots  int
	BookedSlots int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Capacity вычисленная емкость пакета на дату
type Capacity struct {
	Date        time.Time
	TotalSlots  int
	BookedSlots int
}

// AvailableSlots количество свободных слотов, не меньше нуля
func (c Capacity) AvailableSlots() int {
	if c.BookedSlots >= c.TotalSlots {
		return 0
	}
	return c.TotalSlots - c.BookedSlots
}

// CapacityFromOverride емкость по записи на дату
func CapacityFromOverride(o *DateOverride) Capacity {
	return Capacity{Date: o.Date, TotalSlots: o.TotalSlots, BookedSlots: o.BookedSlots}
}

// Blackout дата, вручную закрытая планировщиком
type Blackout struct {
	ID        int64
	PackageID int64
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}
