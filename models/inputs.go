package models

// Входные тела запросов. Поля - указатели, чтобы отличать отсутствующий ключ
// от нулевого значения: validate:"required" срабатывает только на nil.

type EmployeeInput struct {
	Payroll *int    `json:"payroll" validate:"required"`
	Name    *string `json:"name" validate:"required"`
}

type ServiceInput struct {
	ServiceID   *string `json:"service_id" validate:"required"`
	ServiceType *string `json:"service_type" validate:"required"`
}

type ServiceItemInput struct {
	ServiceRequestID *int    `json:"service_request_id" validate:"required"`
	ServiceID        *string `json:"service_id" validate:"required"`
	ServiceType      *string `json:"service_type" validate:"required"`
	Description      *string `json:"description" validate:"required"`
	Quantity         *int    `json:"quantity" validate:"required"`
	UnitPrice        *Money  `json:"unit_price" validate:"required"`
}

type CommentInput struct {
	ServiceRequestID *int    `json:"service_request_id" validate:"required"`
	User             *int    `json:"user" validate:"required"`
	Comment          *string `json:"comment" validate:"required"`
}

// ServiceRequestUpdate - тело PUT /service_request/{id}; дата создания не принимается
type ServiceRequestUpdate struct {
	RequesterName    *string `json:"requester_name" validate:"required"`
	RequesterPayroll *int    `json:"requester_payroll" validate:"required"`
	Status           *string `json:"status" validate:"required"`
	EstimatedTotal   *Money  `json:"estimated_total" validate:"required"`
}

// ServiceRequestCreate - составное тело POST /service_request: заявка, первая позиция
// и первый комментарий. Позиция и комментарий привязываются к переданным
// service_request_id_svc / service_request_id_com, а не к только что созданной заявке.
type ServiceRequestCreate struct {
	RequesterName    *string `json:"requester_name" validate:"required"`
	RequesterPayroll *int    `json:"requester_payroll" validate:"required"`
	Status           *string `json:"status" validate:"required"`
	EstimatedTotal   *Money  `json:"estimated_total" validate:"required"`

	ItemServiceRequestID *int    `json:"service_request_id_svc" validate:"required"`
	ServiceID            *string `json:"service_id" validate:"required"`
	ServiceType          *string `json:"service_type" validate:"required"`
	Description          *string `json:"description" validate:"required"`
	Quantity             *int    `json:"quantity" validate:"required"`
	UnitPrice            *Money  `json:"unit_price" validate:"required"`

	CommentServiceRequestID *int    `json:"service_request_id_com" validate:"required"`
	User                    *int    `json:"user" validate:"required"`
	Comment                 *string `json:"comment" validate:"required"`
}
