package db

import (
	"context"
	"time"

	"servicedesk/models"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// ServiceRequest (Заявка)
type ServiceRequest struct {
	ID               int          `db:"id"`
	RequesterName    string       `db:"requester_name"`
	RequesterPayroll int          `db:"requester_payroll"`
	CreatedDate      time.Time    `db:"created_date"`
	Status           string       `db:"status"`
	EstimatedTotal   models.Money `db:"estimated_total"`
}

// ServiceItem (Позиция заявки)
type ServiceItem struct {
	ID               int          `db:"id"`
	ServiceID        string       `db:"service_id"`
	ServiceType      string       `db:"service_type"`
	Description      string       `db:"description"`
	Quantity         int          `db:"quantity"`
	UnitPrice        models.Money `db:"unit_price"`
	ServiceRequestID int          `db:"service_request_id"`
}

// Comment (Комментарий к заявке)
type Comment struct {
	ID               int       `db:"id"`
	User             int       `db:"user"`
	Comment          string    `db:"comment"`
	CreatedDate      time.Time `db:"created_date"`
	ServiceRequestID int       `db:"service_request_id"`
}

// ServiceRequestDetail - заявка вместе со своими позициями и комментариями
type ServiceRequestDetail struct {
	ServiceRequest
	Items    []ServiceItem
	Comments []Comment
}

const (
	serviceRequestColumns = `id, requester_name, requester_payroll, created_date, status, estimated_total`
	serviceItemColumns    = `id, service_id, service_type, description, quantity, unit_price, service_request_id`
	commentColumns        = `id, "user", comment, created_date, service_request_id`
)

// now - время вставки; microsecond, чтобы совпадать с точностью TIMESTAMP в Postgres
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// CreateServiceRequest создает заявку, ее первую позицию и первый комментарий
// в одной транзакции. item и comment ссылаются на свои ServiceRequestID как есть.
func (s *Storage) CreateServiceRequest(ctx context.Context, sr *ServiceRequest, item *ServiceItem, comment *Comment) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := createServiceRequest(ctx, tx, sr); err != nil {
			return err
		}
		if err := createServiceItem(ctx, tx, item); err != nil {
			return err
		}
		return createComment(ctx, tx, comment)
	})
}

func createServiceRequest(ctx context.Context, q sqlx.ExtContext, sr *ServiceRequest) error {
	sr.CreatedDate = now()
	query := `
        INSERT INTO service_request
            (requester_name, requester_payroll, created_date, status, estimated_total)
        VALUES
            (?, ?, ?, ?, ?)
        RETURNING id`
	id, err := insert(ctx, q, query,
		sr.RequesterName, sr.RequesterPayroll, sr.CreatedDate, sr.Status, sr.EstimatedTotal)
	if err != nil {
		return errors.Wrap(err, "create service request")
	}
	sr.ID = id
	return nil
}

func (s *Storage) GetServiceRequest(ctx context.Context, id int) (*ServiceRequestDetail, error) {
	d := &ServiceRequestDetail{}
	query := `SELECT ` + serviceRequestColumns + ` FROM service_request WHERE id = ?`
	if err := s.get(ctx, &d.ServiceRequest, query, id); err != nil {
		return nil, errors.Wrapf(err, "get service request %d", id)
	}

	d.Items = []ServiceItem{}
	query = `SELECT ` + serviceItemColumns + ` FROM service_items WHERE service_request_id = ? ORDER BY id`
	if err := s.db.SelectContext(ctx, &d.Items, s.db.Rebind(query), id); err != nil {
		return nil, errors.Wrapf(err, "get items of service request %d", id)
	}

	d.Comments = []Comment{}
	query = `SELECT ` + commentColumns + ` FROM comments WHERE service_request_id = ? ORDER BY id`
	if err := s.db.SelectContext(ctx, &d.Comments, s.db.Rebind(query), id); err != nil {
		return nil, errors.Wrapf(err, "get comments of service request %d", id)
	}
	return d, nil
}

// ListServiceRequests отдает все заявки с вложенными позициями и комментариями.
// Три запроса вместо N+1: дочерние строки раскладываются по заявкам в памяти.
func (s *Storage) ListServiceRequests(ctx context.Context) ([]ServiceRequestDetail, error) {
	requests := []ServiceRequest{}
	query := `SELECT ` + serviceRequestColumns + ` FROM service_request ORDER BY id`
	if err := s.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, errors.Wrap(err, "list service requests")
	}

	items, err := s.ListServiceItems(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.ListComments(ctx)
	if err != nil {
		return nil, err
	}
	return AssembleServiceRequests(requests, items, comments), nil
}

// AssembleServiceRequests группирует позиции и комментарии по service_request_id.
// Порядок заявок и дочерних строк сохраняется; сироты без заявки отбрасываются.
func AssembleServiceRequests(requests []ServiceRequest, items []ServiceItem, comments []Comment) []ServiceRequestDetail {
	details := make([]ServiceRequestDetail, len(requests))
	index := make(map[int]int, len(requests))
	for i, sr := range requests {
		details[i] = ServiceRequestDetail{
			ServiceRequest: sr,
			Items:          []ServiceItem{},
			Comments:       []Comment{},
		}
		index[sr.ID] = i
	}
	for _, it := range items {
		if i, ok := index[it.ServiceRequestID]; ok {
			details[i].Items = append(details[i].Items, it)
		}
	}
	for _, c := range comments {
		if i, ok := index[c.ServiceRequestID]; ok {
			details[i].Comments = append(details[i].Comments, c)
		}
	}
	return details
}

// UpdateServiceRequest перезаписывает все изменяемые поля; created_date не трогается
func (s *Storage) UpdateServiceRequest(ctx context.Context, sr *ServiceRequest) error {
	query := `
        UPDATE service_request
        SET requester_name = ?, requester_payroll = ?, status = ?, estimated_total = ?
        WHERE id = ?`
	err := exec(ctx, s.db, query, sr.RequesterName, sr.RequesterPayroll, sr.Status, sr.EstimatedTotal, sr.ID)
	return errors.Wrapf(err, "update service request %d", sr.ID)
}

// DeleteServiceRequest удаляет заявку вместе с позициями и комментариями.
// Дочерние строки удаляются явно, не полагаясь на ON DELETE CASCADE в схеме.
func (s *Storage) DeleteServiceRequest(ctx context.Context, id int) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM service_items WHERE service_request_id = ?`), id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM comments WHERE service_request_id = ?`), id); err != nil {
			return err
		}
		return exec(ctx, tx, `DELETE FROM service_request WHERE id = ?`, id)
	})
	return errors.Wrapf(err, "delete service request %d", id)
}

func (s *Storage) CreateServiceItem(ctx context.Context, item *ServiceItem) error {
	return createServiceItem(ctx, s.db, item)
}

func createServiceItem(ctx context.Context, q sqlx.ExtContext, item *ServiceItem) error {
	query := `
        INSERT INTO service_items
            (service_id, service_type, description, quantity, unit_price, service_request_id)
        VALUES
            (?, ?, ?, ?, ?, ?)
        RETURNING id`
	id, err := insert(ctx, q, query,
		item.ServiceID, item.ServiceType, item.Description, item.Quantity, item.UnitPrice, item.ServiceRequestID)
	if err != nil {
		return errors.Wrap(err, "create service item")
	}
	item.ID = id
	return nil
}

func (s *Storage) GetServiceItem(ctx context.Context, id int) (*ServiceItem, error) {
	item := &ServiceItem{}
	query := `SELECT ` + serviceItemColumns + ` FROM service_items WHERE id = ?`
	if err := s.get(ctx, item, query, id); err != nil {
		return nil, errors.Wrapf(err, "get service item %d", id)
	}
	return item, nil
}

func (s *Storage) ListServiceItems(ctx context.Context) ([]ServiceItem, error) {
	items := []ServiceItem{}
	query := `SELECT ` + serviceItemColumns + ` FROM service_items ORDER BY id`
	if err := s.db.SelectContext(ctx, &items, query); err != nil {
		return nil, errors.Wrap(err, "list service items")
	}
	return items, nil
}

func (s *Storage) UpdateServiceItem(ctx context.Context, item *ServiceItem) error {
	query := `
        UPDATE service_items
        SET service_id = ?, service_type = ?, description = ?, quantity = ?, unit_price = ?, service_request_id = ?
        WHERE id = ?`
	err := exec(ctx, s.db, query,
		item.ServiceID, item.ServiceType, item.Description, item.Quantity, item.UnitPrice, item.ServiceRequestID, item.ID)
	return errors.Wrapf(err, "update service item %d", item.ID)
}

func (s *Storage) DeleteServiceItem(ctx context.Context, id int) error {
	query := `DELETE FROM service_items WHERE id = ?`
	return errors.Wrapf(exec(ctx, s.db, query, id), "delete service item %d", id)
}

func (s *Storage) CreateComment(ctx context.Context, c *Comment) error {
	return createComment(ctx, s.db, c)
}

func createComment(ctx context.Context, q sqlx.ExtContext, c *Comment) error {
	c.CreatedDate = now()
	query := `
        INSERT INTO comments ("user", comment, created_date, service_request_id)
        VALUES (?, ?, ?, ?)
        RETURNING id`
	id, err := insert(ctx, q, query, c.User, c.Comment, c.CreatedDate, c.ServiceRequestID)
	if err != nil {
		return errors.Wrap(err, "create comment")
	}
	c.ID = id
	return nil
}

func (s *Storage) GetComment(ctx context.Context, id int) (*Comment, error) {
	c := &Comment{}
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = ?`
	if err := s.get(ctx, c, query, id); err != nil {
		return nil, errors.Wrapf(err, "get comment %d", id)
	}
	return c, nil
}

func (s *Storage) ListComments(ctx context.Context) ([]Comment, error) {
	comments := []Comment{}
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY id`
	if err := s.db.SelectContext(ctx, &comments, query); err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	return comments, nil
}

// UpdateComment меняет автора, текст и заявку; дата создания остается прежней
func (s *Storage) UpdateComment(ctx context.Context, c *Comment) error {
	query := `UPDATE comments SET "user" = ?, comment = ?, service_request_id = ? WHERE id = ?`
	err := exec(ctx, s.db, query, c.User, c.Comment, c.ServiceRequestID, c.ID)
	return errors.Wrapf(err, "update comment %d", c.ID)
}

func (s *Storage) DeleteComment(ctx context.Context, id int) error {
	query := `DELETE FROM comments WHERE id = ?`
	return errors.Wrapf(exec(ctx, s.db, query, id), "delete comment %d", id)
}
