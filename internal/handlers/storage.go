package handlers

import (
	"context"
	"servicedesk/db"
)

type StorageInterface interface {
	CreateEmployee(ctx context.Context, e *db.Employee) error
	GetEmployee(ctx context.Context, id int) (*db.Employee, error)
	ListEmployees(ctx context.Context) ([]db.Employee, error)
	UpdateEmployee(ctx context.Context, e *db.Employee) error
	DeleteEmployee(ctx context.Context, id int) error

	CreateService(ctx context.Context, svc *db.Service) error
	GetService(ctx context.Context, id int) (*db.Service, error)
	ListServices(ctx context.Context) ([]db.Service, error)
	UpdateService(ctx context.Context, svc *db.Service) error
	DeleteService(ctx context.Context, id int) error

	CreateServiceRequest(ctx context.Context, sr *db.ServiceRequest, item *db.ServiceItem, comment *db.Comment) error
	GetServiceRequest(ctx context.Context, id int) (*db.ServiceRequestDetail, error)
	ListServiceRequests(ctx context.Context) ([]db.ServiceRequestDetail, error)
	UpdateServiceRequest(ctx context.Context, sr *db.ServiceRequest) error
	DeleteServiceRequest(ctx context.Context, id int) error

	CreateServiceItem(ctx context.Context, item *db.ServiceItem) error
	GetServiceItem(ctx context.Context, id int) (*db.ServiceItem, error)
	ListServiceItems(ctx context.Context) ([]db.ServiceItem, error)
	UpdateServiceItem(ctx context.Context, item *db.ServiceItem) error
	DeleteServiceItem(ctx context.Context, id int) error

	CreateComment(ctx context.Context, c *db.Comment) error
	GetComment(ctx context.Context, id int) (*db.Comment, error)
	ListComments(ctx context.Context) ([]db.Comment, error)
	UpdateComment(ctx context.Context, c *db.Comment) error
	DeleteComment(ctx context.Context, id int) error
}
