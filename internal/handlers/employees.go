package handlers

import (
	"net/http"

	"servicedesk/db"
	"servicedesk/models"
)

// CreateEmployeeHandler обрабатывает POST /employee
func (h *Handler) CreateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var in models.EmployeeInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	e := db.Employee{Payroll: *in.Payroll, Name: *in.Name}
	if err := h.Store.CreateEmployee(r.Context(), &e); err != nil {
		h.serverError(w, r, "Failed to create employee", err)
		return
	}
	writeMessage(w, "employee %s has been created successfully.", e.Name)
}

// ListEmployeesHandler обрабатывает GET /employee
func (h *Handler) ListEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.serverError(w, r, "Failed to get employees", err)
		return
	}

	results := make([]models.Employee, 0, len(employees))
	for _, e := range employees {
		results = append(results, employeeRecord(e))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(results),
		"employees": results,
		"message":   "success",
	})
}

// GetEmployeeHandler обрабатывает GET /employee/{id}
func (h *Handler) GetEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "employee")
	if !ok {
		return
	}
	e, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "employee", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "success",
		"employee": employeeRecord(*e),
	})
}

// UpdateEmployeeHandler обрабатывает PUT /employee/{id}: перезаписываются все поля
func (h *Handler) UpdateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "employee")
	if !ok {
		return
	}
	e, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "employee", err)
		return
	}

	var in models.EmployeeInput
	if !h.decodeBody(w, r, &in) {
		return
	}
	e.Payroll = *in.Payroll
	e.Name = *in.Name

	if err := h.Store.UpdateEmployee(r.Context(), e); err != nil {
		h.storeError(w, r, "employee", err)
		return
	}
	writeMessage(w, "employee %s successfully updated", e.Name)
}

// DeleteEmployeeHandler обрабатывает DELETE /employee/{id}
func (h *Handler) DeleteEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "employee")
	if !ok {
		return
	}
	e, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "employee", err)
		return
	}
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		h.storeError(w, r, "employee", err)
		return
	}
	writeMessage(w, "Employee %s successfully deleted.", e.Name)
}
