package handlers

import (
	"net/http"

	"servicedesk/db"
	"servicedesk/models"
)

func itemFromInput(in models.ServiceItemInput) db.ServiceItem {
	return db.ServiceItem{
		ServiceID:        *in.ServiceID,
		ServiceType:      *in.ServiceType,
		Description:      *in.Description,
		Quantity:         *in.Quantity,
		UnitPrice:        *in.UnitPrice,
		ServiceRequestID: *in.ServiceRequestID,
	}
}

// CreateServiceItemHandler обрабатывает POST /service_item
func (h *Handler) CreateServiceItemHandler(w http.ResponseWriter, r *http.Request) {
	var in models.ServiceItemInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	item := itemFromInput(in)
	if err := h.Store.CreateServiceItem(r.Context(), &item); err != nil {
		h.serverError(w, r, "Failed to create service item", err)
		return
	}
	writeMessage(w, "service item with service id: %s has been created successfully.", item.ServiceID)
}

// ListServiceItemsHandler обрабатывает GET /service_item
func (h *Handler) ListServiceItemsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListServiceItems(r.Context())
	if err != nil {
		h.serverError(w, r, "Failed to get service items", err)
		return
	}

	results := make([]models.ServiceItem, 0, len(items))
	for _, it := range items {
		results = append(results, serviceItemRecord(it))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":         len(results),
		"service items": results,
		"message":       "success",
	})
}

func (h *Handler) GetServiceItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "service item")
	if !ok {
		return
	}
	item, err := h.Store.GetServiceItem(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "service item", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "success",
		"service item": serviceItemRecord(*item),
	})
}

// UpdateServiceItemHandler перезаписывает все поля позиции, включая заявку-владельца
func (h *Handler) UpdateServiceItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "service item")
	if !ok {
		return
	}
	if _, err := h.Store.GetServiceItem(r.Context(), id); err != nil {
		h.storeError(w, r, "service item", err)
		return
	}

	var in models.ServiceItemInput
	if !h.decodeBody(w, r, &in) {
		return
	}
	item := itemFromInput(in)
	item.ID = id

	if err := h.Store.UpdateServiceItem(r.Context(), &item); err != nil {
		h.storeError(w, r, "service item", err)
		return
	}
	writeMessage(w, "service item id: %d successfully updated", id)
}

func (h *Handler) DeleteServiceItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "service item")
	if !ok {
		return
	}
	if _, err := h.Store.GetServiceItem(r.Context(), id); err != nil {
		h.storeError(w, r, "service item", err)
		return
	}
	if err := h.Store.DeleteServiceItem(r.Context(), id); err != nil {
		h.storeError(w, r, "service item", err)
		return
	}
	writeMessage(w, "service item id: %d successfully deleted.", id)
}
