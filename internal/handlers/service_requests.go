package handlers

import (
	"net/http"

	"servicedesk/db"
	"servicedesk/models"

	"github.com/sirupsen/logrus"
)

// CreateServiceRequestHandler обрабатывает POST /service_request.
// Одним телом создаются заявка, позиция и комментарий. Позиция и комментарий
// привязываются к service_request_id_svc / service_request_id_com из тела,
// а не к id новой заявки - так устроен исходный контракт.
func (h *Handler) CreateServiceRequestHandler(w http.ResponseWriter, r *http.Request) {
	var in models.ServiceRequestCreate
	if !h.decodeBody(w, r, &in) {
		return
	}

	sr := db.ServiceRequest{
		RequesterName:    *in.RequesterName,
		RequesterPayroll: *in.RequesterPayroll,
		Status:           *in.Status,
		EstimatedTotal:   *in.EstimatedTotal,
	}
	item := db.ServiceItem{
		ServiceID:        *in.ServiceID,
		ServiceType:      *in.ServiceType,
		Description:      *in.Description,
		Quantity:         *in.Quantity,
		UnitPrice:        *in.UnitPrice,
		ServiceRequestID: *in.ItemServiceRequestID,
	}
	comment := db.Comment{
		User:             *in.User,
		Comment:          *in.Comment,
		ServiceRequestID: *in.CommentServiceRequestID,
	}

	if err := h.Store.CreateServiceRequest(r.Context(), &sr, &item, &comment); err != nil {
		h.serverError(w, r, "Failed to create service request", err)
		return
	}
	if item.ServiceRequestID != sr.ID || comment.ServiceRequestID != sr.ID {
		h.log.WithFields(logrus.Fields{
			"service_request_id":     sr.ID,
			"service_request_id_svc": item.ServiceRequestID,
			"service_request_id_com": comment.ServiceRequestID,
		}).Warn("service request created with children linked to another request")
	}
	writeMessage(w, "Service Request with id: %d has been created successfully.", sr.ID)
}

// ListServiceRequestsHandler обрабатывает GET /service_request: массив заявок с вложениями
func (h *Handler) ListServiceRequestsHandler(w http.ResponseWriter, r *http.Request) {
	details, err := h.Store.ListServiceRequests(r.Context())
	if err != nil {
		h.serverError(w, r, "Failed to get service requests", err)
		return
	}

	results := make([]models.ServiceRequest, 0, len(details))
	for _, d := range details {
		results = append(results, serviceRequestRecord(d))
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) GetServiceRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "service request")
	if !ok {
		return
	}
	d, err := h.Store.GetServiceRequest(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "service request", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":         "success",
		"service request": serviceRequestRecord(*d),
	})
}

// UpdateServiceRequestHandler перезаписывает имя, табельный номер, статус и сумму.
// Статус - произвольная строка, переходы не проверяются.
func (h *Handler) UpdateServiceRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "service request")
	if !ok {
		return
	}
	d, err := h.Store.GetServiceRequest(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "service request", err)
		return
	}

	var in models.ServiceRequestUpdate
	if !h.decodeBody(w, r, &in) {
		return
	}
	sr := d.ServiceRequest
	sr.RequesterName = *in.RequesterName
	sr.RequesterPayroll = *in.RequesterPayroll
	sr.Status = *in.Status
	sr.EstimatedTotal = *in.EstimatedTotal

	if err := h.Store.UpdateServiceRequest(r.Context(), &sr); err != nil {
		h.storeError(w, r, "service request", err)
		return
	}
	writeMessage(w, "service request id: %d successfully updated", sr.ID)
}

// DeleteServiceRequestHandler удаляет заявку вместе с позициями и комментариями
func (h *Handler) DeleteServiceRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "service request")
	if !ok {
		return
	}
	if _, err := h.Store.GetServiceRequest(r.Context(), id); err != nil {
		h.storeError(w, r, "service request", err)
		return
	}
	if err := h.Store.DeleteServiceRequest(r.Context(), id); err != nil {
		h.storeError(w, r, "service request", err)
		return
	}
	writeMessage(w, "service request id: %d successfully deleted.", id)
}
