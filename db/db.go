package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrNotFound возвращается, когда строки с таким id нет
var ErrNotFound = errors.New("record not found")

func init() {
	// sqlx не знает имя драйвера modernc, поэтому задаем плейсхолдеры явно
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Open подключается к БД. Для SQLite включаются внешние ключи,
// иначе каскадное удаление на уровне схемы не работает.
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverPostgres:
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	default:
		return nil, errors.Errorf("unsupported db driver %q", driver)
	}

	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %s", driver)
	}
	if driver == DriverSQLite {
		// одна запись за раз, иначе SQLITE_BUSY под нагрузкой
		conn.SetMaxOpenConns(1)
	}
	return conn, nil
}

func sqliteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// get выполняет GetContext и превращает sql.ErrNoRows в ErrNotFound
func (s *Storage) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := s.db.GetContext(ctx, dest, s.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// insert выполняет INSERT ... RETURNING id; q - это *sqlx.DB или *sqlx.Tx
func insert(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (int, error) {
	var id int
	err := q.QueryRowxContext(ctx, q.Rebind(query), args...).Scan(&id)
	return id, err
}

// exec выполняет UPDATE/DELETE по id и проверяет, что строка существовала
func exec(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) error {
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// withTx открывает транзакцию: коммит при успехе, откат при любой ошибке
func (s *Storage) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit tx")
}

// Employee (Сотрудник)
type Employee struct {
	ID      int    `db:"id"`
	Payroll int    `db:"payroll"`
	Name    string `db:"name"`
}

func (s *Storage) CreateEmployee(ctx context.Context, e *Employee) error {
	query := `INSERT INTO employee (payroll, name) VALUES (?, ?) RETURNING id`
	id, err := insert(ctx, s.db, query, e.Payroll, e.Name)
	if err != nil {
		return errors.Wrap(err, "create employee")
	}
	e.ID = id
	return nil
}

func (s *Storage) GetEmployee(ctx context.Context, id int) (*Employee, error) {
	e := &Employee{}
	query := `SELECT id, payroll, name FROM employee WHERE id = ?`
	if err := s.get(ctx, e, query, id); err != nil {
		return nil, errors.Wrapf(err, "get employee %d", id)
	}
	return e, nil
}

func (s *Storage) ListEmployees(ctx context.Context) ([]Employee, error) {
	employees := []Employee{}
	query := `SELECT id, payroll, name FROM employee ORDER BY id`
	if err := s.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, errors.Wrap(err, "list employees")
	}
	return employees, nil
}

func (s *Storage) UpdateEmployee(ctx context.Context, e *Employee) error {
	query := `UPDATE employee SET payroll = ?, name = ? WHERE id = ?`
	return errors.Wrapf(exec(ctx, s.db, query, e.Payroll, e.Name, e.ID), "update employee %d", e.ID)
}

func (s *Storage) DeleteEmployee(ctx context.Context, id int) error {
	query := `DELETE FROM employee WHERE id = ?`
	return errors.Wrapf(exec(ctx, s.db, query, id), "delete employee %d", id)
}

// Service (Услуга из справочника)
type Service struct {
	ID          int    `db:"id"`
	ServiceID   string `db:"service_id"`
	ServiceType string `db:"service_type"`
}

func (s *Storage) CreateService(ctx context.Context, svc *Service) error {
	query := `INSERT INTO service (service_id, service_type) VALUES (?, ?) RETURNING id`
	id, err := insert(ctx, s.db, query, svc.ServiceID, svc.ServiceType)
	if err != nil {
		return errors.Wrap(err, "create service")
	}
	svc.ID = id
	return nil
}

func (s *Storage) GetService(ctx context.Context, id int) (*Service, error) {
	svc := &Service{}
	query := `SELECT id, service_id, service_type FROM service WHERE id = ?`
	if err := s.get(ctx, svc, query, id); err != nil {
		return nil, errors.Wrapf(err, "get service %d", id)
	}
	return svc, nil
}

func (s *Storage) ListServices(ctx context.Context) ([]Service, error) {
	services := []Service{}
	query := `SELECT id, service_id, service_type FROM service ORDER BY id`
	if err := s.db.SelectContext(ctx, &services, query); err != nil {
		return nil, errors.Wrap(err, "list services")
	}
	return services, nil
}

func (s *Storage) UpdateService(ctx context.Context, svc *Service) error {
	query := `UPDATE service SET service_id = ?, service_type = ? WHERE id = ?`
	return errors.Wrapf(exec(ctx, s.db, query, svc.ServiceID, svc.ServiceType, svc.ID), "update service %d", svc.ID)
}

func (s *Storage) DeleteService(ctx context.Context, id int) error {
	query := `DELETE FROM service WHERE id = ?`
	return errors.Wrapf(exec(ctx, s.db, query, id), "delete service %d", id)
}
