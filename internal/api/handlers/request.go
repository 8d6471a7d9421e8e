package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

var (
	// ErrInvalidBody тело запроса не разбирается как JSON
	ErrInvalidBody = errors.New("invalid request body")

	// ErrValidation тело запроса не прошло валидацию
	ErrValidation = errors.New("request validation failed")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON разбирает тело запроса и проверяет теги validate
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describeValidation(err))
	}
	return nil
}

// describeValidation понятное описание первой ошибки валидации
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	field := fe.Field()
	if field != "" {
		field = strings.ToLower(field[:1]) + field[1:]
	}
	if fe.Param() != "" {
		return fmt.Sprintf("field %s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("field %s must satisfy %s", field, fe.Tag())
}

// PathID положительный int64 из переменной маршрута
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Reject(domain.ErrInvalidInput, fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

// QueryDate обязательная дата YYYY-MM-DD из query параметра
func QueryDate(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, domain.Reject(domain.ErrInvalidInput, fmt.Sprintf("query parameter %s is required", name))
	}
	return domain.ParseDate(value)
}

// OptionalQueryDate необязательная дата YYYY-MM-DD из query параметра
func OptionalQueryDate(r *http.Request, name string) (*time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// QueryInt необязательный целый query параметр со значением по умолчанию
func QueryInt(r *http.Request, name string, def int) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, domain.Reject(domain.ErrInvalidInput, fmt.Sprintf("query parameter %s must be an integer", name))
	}
	return n, nil
}

// QueryString необязательный строковый query параметр
func QueryString(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	return &value
}
