package db_test

import (
	"context"
	"regexp"
	"testing"

	"servicedesk/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newMockStorage(t *testing.T) (*db.Storage, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return db.NewStorage(sqlx.NewDb(mockDB, db.DriverPostgres)), mock
}

func TestCreateServiceRequestCommitsAllThree(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO service_request`)).
		WithArgs("Ann", 1001, sqlmock.AnyArg(), "Open", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO service_items`)).
		WithArgs("ELC-02", "Electrical", "Replace socket", 2, sqlmock.AnyArg(), 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO comments`)).
		WithArgs(1001, "Urgent, office 4B", sqlmock.AnyArg(), 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	sr, item, comment := newRequest("Ann")
	item.ServiceRequestID = 3
	comment.ServiceRequestID = 3
	require.NoError(t, store.CreateServiceRequest(context.Background(), sr, item, comment))

	require.Equal(t, 7, sr.ID)
	require.Equal(t, 11, item.ID)
	require.Equal(t, 12, comment.ID)
	require.Equal(t, 3, item.ServiceRequestID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateServiceRequestRollsBackOnCommentFailure(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO service_request`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO service_items`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO comments`)).
		WillReturnError(errors.New("insert or update on table \"comments\" violates foreign key constraint"))
	mock.ExpectRollback()

	sr, item, comment := newRequest("Ann")
	err := store.CreateServiceRequest(context.Background(), sr, item, comment)
	require.Error(t, err)
	require.Contains(t, err.Error(), "create comment")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteServiceRequestMissingRollsBack(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM service_items WHERE service_request_id = $1`)).
		WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM comments WHERE service_request_id = $1`)).
		WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM service_request WHERE id = $1`)).
		WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.DeleteServiceRequest(context.Background(), 5)
	require.True(t, errors.Is(err, db.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
