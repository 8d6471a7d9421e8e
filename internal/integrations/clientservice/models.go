package clientservice

// Client модель клиента из ClientService
type Client struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от ClientService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
