package handlers

import (
	"servicedesk/db"
	"servicedesk/models"
)

// Преобразование строк БД в тела ответов. Каждая сущность собирается
// только здесь, обработчики не строят JSON вручную.

func employeeRecord(e db.Employee) models.Employee {
	return models.Employee{ID: e.ID, Payroll: e.Payroll, Name: e.Name}
}

func serviceRecord(s db.Service) models.Service {
	return models.Service{ID: s.ID, ServiceID: s.ServiceID, ServiceType: s.ServiceType}
}

func serviceItemRecord(it db.ServiceItem) models.ServiceItem {
	return models.ServiceItem{
		ServiceRequestID: it.ServiceRequestID,
		ID:               it.ID,
		ServiceID:        it.ServiceID,
		ServiceType:      it.ServiceType,
		Description:      it.Description,
		Quantity:         it.Quantity,
		UnitPrice:        it.UnitPrice,
	}
}

func commentRecord(c db.Comment) models.Comment {
	return models.Comment{
		ServiceRequestID: c.ServiceRequestID,
		ID:               c.ID,
		User:             c.User,
		Comment:          c.Comment,
		CreatedDate:      c.CreatedDate,
	}
}

// serviceRequestRecord - заявка со вложенными позициями и комментариями
func serviceRequestRecord(d db.ServiceRequestDetail) models.ServiceRequest {
	rec := models.ServiceRequest{
		ID:               d.ID,
		RequesterName:    d.RequesterName,
		RequesterPayroll: d.RequesterPayroll,
		CreatedDate:      d.CreatedDate,
		Status:           d.Status,
		EstimatedTotal:   d.EstimatedTotal,
		ServiceItems:     make([]models.ServiceRequestItem, 0, len(d.Items)),
		Comments:         make([]models.RequestComment, 0, len(d.Comments)),
	}
	for _, it := range d.Items {
		rec.ServiceItems = append(rec.ServiceItems, models.ServiceRequestItem{
			ID:               it.ID,
			ServiceID:        it.ServiceID,
			ServiceType:      it.ServiceType,
			Description:      it.Description,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			ServiceRequestID: it.ServiceRequestID,
		})
	}
	for _, c := range d.Comments {
		rec.Comments = append(rec.Comments, models.RequestComment{
			ID:               c.ID,
			User:             c.User,
			Comment:          c.Comment,
			CreatedDate:      c.CreatedDate,
			ServiceRequestID: c.ServiceRequestID,
		})
	}
	return rec
}
