package domain

import "errors"

// Ожидаемые, видимые пользователю виды отказов
var (
	ErrNotFound            = errors.New("not found")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrBlackout            = errors.New("date is blacked out")
	ErrPreparationConflict = errors.New("preparation period conflict")
	ErrDuplicateBooking    = errors.New("duplicate booking")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidDate         = errors.New("invalid date")
	ErrDuplicateBlackout   = errors.New("duplicate blackout")
	ErrInvalidInput        = errors.New("invalid input")
	ErrAccessDenied        = errors.New("access denied")
)

var kindNames = []struct {
	err  error
	name string
}{
	{ErrNotFound, "NotFound"},
	{ErrCapacityExceeded, "CapacityExceeded"},
	{ErrBlackout, "Blackout"},
	{ErrPreparationConflict, "PreparationConflict"},
	{ErrDuplicateBooking, "DuplicateBooking"},
	{ErrInvalidTransition, "InvalidTransition"},
	{ErrInvalidDate, "InvalidDate"},
	{ErrDuplicateBlackout, "DuplicateBlackout"},
	{ErrInvalidInput, "InvalidInput"},
	{ErrAccessDenied, "AccessDenied"},
}

// Rejection отказ с видом и понятной пользователю причиной
type Rejection struct {
	Kind   error
	Reason string
}

func (r *Rejection) Error() string {
	if r.Reason == "" {
		return r.Kind.Error()
	}
	return r.Reason
}

func (r *Rejection) Unwrap() error {
	return r.Kind
}

// Reject создает отказ заданного вида
func Reject(kind error, reason string) error {
	return &Rejection{Kind: kind, Reason: reason}
}

// ReasonOf возвращает причину отказа или текст ошибки
func ReasonOf(err error) string {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// KindOf имя вида отказа, "Internal" для прочих ошибок
func KindOf(err error) string {
	for _, k := range kindNames {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Internal"
}

// IsExpected возвращает true для отказов из таксономии
func IsExpected(err error) bool {
	return KindOf(err) != "Internal"
}
