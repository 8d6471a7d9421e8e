package domain

// Значения по умолчанию
const (
	DefaultTotalSlots       = 1
	DefaultRangeHorizonDays = 100
	DefaultUpcomingDays     = 60
	DefaultUpcomingLimit    = 10
)

// Ограничения бизнес-валидации
const (
	MinDefaultTotalSlots = 1
	MinDateTotalSlots    = 0
	MaxTotalSlots        = 1000
	MaxPreparationDays   = 365
	MaxLocationLength    = 255
	MaxNotesLength       = 1000
	MaxReasonLength      = 500
	MaxUpcomingDays      = 365
	MaxUpcomingLimit     = 100
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Причины отказа, которые видит клиент
const (
	ReasonPackageUnavailable = "package not found or inactive"
	ReasonBlackoutDefault    = "date is blocked by the planner"
	ReasonPreparation        = "date falls within the preparation period of another booking"
	ReasonNoSlots            = "no slots available for this date"
)

// ActiveStatuses статусы, занимающие слот и участвующие в проверке уникальности
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
