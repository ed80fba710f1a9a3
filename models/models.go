package models

import "time"

// Сущность Сотрудника
type Employee struct {
	ID      int    `json:"id"`
	Payroll int    `json:"payroll"`
	Name    string `json:"name"`
}

// Сущность Услуги (справочник)
type Service struct {
	ID          int    `json:"id"`
	ServiceID   string `json:"service_id"`
	ServiceType string `json:"service_type"`
}

// Позиция заявки в плоском виде (GET /service_item)
type ServiceItem struct {
	ServiceRequestID int    `json:"service_request_id"`
	ID               int    `json:"id"`
	ServiceID        string `json:"service_id"`
	ServiceType      string `json:"service_type"`
	Description      string `json:"description"`
	Quantity         int    `json:"quantity"`
	UnitPrice        Money  `json:"unit_price"`
}

// Комментарий в плоском виде (GET /comment)
type Comment struct {
	ServiceRequestID int       `json:"service_request_id"`
	ID               int       `json:"id"`
	User             int       `json:"user"`
	Comment          string    `json:"comment"`
	CreatedDate      time.Time `json:"created_date"`
}

// Заявка вместе с позициями и комментариями
type ServiceRequest struct {
	ID               int                  `json:"service_request_id"`
	RequesterName    string               `json:"requester_name"`
	RequesterPayroll int                  `json:"requester_payroll"`
	CreatedDate      time.Time            `json:"created_date"`
	Status           string               `json:"status"`
	EstimatedTotal   Money                `json:"estimated_total"`
	ServiceItems     []ServiceRequestItem `json:"service_items"`
	Comments         []RequestComment     `json:"comments"`
}

// Позиция внутри заявки
type ServiceRequestItem struct {
	ID               int    `json:"service_item_id"`
	ServiceID        string `json:"service_id"`
	ServiceType      string `json:"service_type"`
	Description      string `json:"description"`
	Quantity         int    `json:"quantity"`
	UnitPrice        Money  `json:"unit_price"`
	ServiceRequestID int    `json:"service_request_id"`
}

// Комментарий внутри заявки; автор отдается как requester_payroll
type RequestComment struct {
	ID               int       `json:"comment_id"`
	User             int       `json:"requester_payroll"`
	Comment          string    `json:"comment"`
	CreatedDate      time.Time `json:"created_date"`
	ServiceRequestID int       `json:"service_request_id"`
}
