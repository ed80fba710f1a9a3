package handlers

import (
	"net/http"

	"servicedesk/db"
	"servicedesk/models"
)

// CreateServiceHandler обрабатывает POST /service
func (h *Handler) CreateServiceHandler(w http.ResponseWriter, r *http.Request) {
	var in models.ServiceInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	svc := db.Service{ServiceID: *in.ServiceID, ServiceType: *in.ServiceType}
	if err := h.Store.CreateService(r.Context(), &svc); err != nil {
		h.serverError(w, r, "Failed to create service", err)
		return
	}
	writeMessage(w, "Service %s has been created successfully.", svc.ServiceID)
}

// ListServicesHandler обрабатывает GET /service
func (h *Handler) ListServicesHandler(w http.ResponseWriter, r *http.Request) {
	services, err := h.Store.ListServices(r.Context())
	if err != nil {
		h.serverError(w, r, "Failed to get services", err)
		return
	}

	results := make([]models.Service, 0, len(services))
	for _, s := range services {
		results = append(results, serviceRecord(s))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(results),
		"services": results,
		"message":  "success",
	})
}

func (h *Handler) GetServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "service")
	if !ok {
		return
	}
	svc, err := h.Store.GetService(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "service", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "success",
		"service": serviceRecord(*svc),
	})
}

func (h *Handler) UpdateServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "service")
	if !ok {
		return
	}
	svc, err := h.Store.GetService(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "service", err)
		return
	}

	var in models.ServiceInput
	if !h.decodeBody(w, r, &in) {
		return
	}
	svc.ServiceID = *in.ServiceID
	svc.ServiceType = *in.ServiceType

	if err := h.Store.UpdateService(r.Context(), svc); err != nil {
		h.storeError(w, r, "service", err)
		return
	}
	writeMessage(w, "Service %s successfully updated", svc.ServiceID)
}

func (h *Handler) DeleteServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "service")
	if !ok {
		return
	}
	svc, err := h.Store.GetService(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "service", err)
		return
	}
	if err := h.Store.DeleteService(r.Context(), id); err != nil {
		h.storeError(w, r, "service", err)
		return
	}
	writeMessage(w, "Service %s successfully deleted.", svc.ServiceID)
}
