package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"servicedesk/db/dbtest"
	"servicedesk/internal/handlers"

	"github.com/prometheus/client_golang/prometheus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	h := handlers.NewHandler(dbtest.NewStorage(t), logger)
	return handlers.NewRouter(h, handlers.RouterOptions{Registry: prometheus.NewRegistry()})
}

func do(t *testing.T, router http.Handler, method, target, body string) (int, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code, w.Body.String()
}

func decode(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func compositeFor(svcID, comID int) string {
	return fmt.Sprintf(`{
		"requester_name": "Ann",
		"requester_payroll": 100,
		"status": "open",
		"estimated_total": 25,
		"service_request_id_svc": %d,
		"service_id": "S1",
		"service_type": "repair",
		"description": "fix chair",
		"quantity": 2,
		"unit_price": 12.5,
		"service_request_id_com": %d,
		"user": 100,
		"comment": "asap"
	}`, svcID, comID)
}

func TestRouterPing(t *testing.T) {
	router := newRouter(t)

	status, body := do(t, router, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Hello, World!", body)
}

func TestRouterEmployeeLifecycle(t *testing.T) {
	router := newRouter(t)

	status, body := do(t, router, http.MethodPost, "/employee", `{"payroll": 100, "name": "Ann"}`)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message": "employee Ann has been created successfully."}`, body)

	status, body = do(t, router, http.MethodGet, "/employee", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"count": 1, "employees": [{"id": 1, "payroll": 100, "name": "Ann"}], "message": "success"}`, body)

	status, body = do(t, router, http.MethodPut, "/employee/1", `{"payroll": 101, "name": "Anna"}`)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message": "employee Anna successfully updated"}`, body)

	status, body = do(t, router, http.MethodGet, "/employee/1", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message": "success", "employee": {"id": 1, "payroll": 101, "name": "Anna"}}`, body)

	status, body = do(t, router, http.MethodDelete, "/employee/1", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message": "Employee Anna successfully deleted."}`, body)

	status, _ = do(t, router, http.MethodGet, "/employee/1", "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestRouterCompositeCreate(t *testing.T) {
	router := newRouter(t)

	status, body := do(t, router, http.MethodPost, "/service_request", compositeFor(1, 1))
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message": "Service Request with id: 1 has been created successfully."}`, body)

	// вторая заявка, но позиция и комментарий уходят в первую
	status, body = do(t, router, http.MethodPost, "/service_request", compositeFor(1, 1))
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message": "Service Request with id: 2 has been created successfully."}`, body)

	status, body = do(t, router, http.MethodGet, "/service_request/1", "")
	require.Equal(t, http.StatusOK, status)
	first := decode(t, body)["service request"].(map[string]interface{})
	require.Equal(t, "25.00", first["estimated_total"])
	require.Len(t, first["service_items"], 2)
	require.Len(t, first["comments"], 2)
	item := first["service_items"].([]interface{})[0].(map[string]interface{})
	require.Equal(t, "12.50", item["unit_price"])
	require.EqualValues(t, 1, item["service_request_id"])
	comment := first["comments"].([]interface{})[0].(map[string]interface{})
	require.EqualValues(t, 100, comment["requester_payroll"])

	status, body = do(t, router, http.MethodGet, "/service_request/2", "")
	require.Equal(t, http.StatusOK, status)
	second := decode(t, body)["service request"].(map[string]interface{})
	require.Equal(t, []interface{}{}, second["service_items"])
	require.Equal(t, []interface{}{}, second["comments"])

	status, body = do(t, router, http.MethodGet, "/service_request", "")
	require.Equal(t, http.StatusOK, status)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list, 2)
	require.EqualValues(t, 1, list[0]["service_request_id"])
	require.EqualValues(t, 2, list[1]["service_request_id"])
}

func TestRouterCompositeCreateUnknownParentFails(t *testing.T) {
	router := newRouter(t)

	status, _ := do(t, router, http.MethodPost, "/service_request", compositeFor(999, 999))
	require.Equal(t, http.StatusInternalServerError, status)

	status, body := do(t, router, http.MethodGet, "/service_request", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `[]`, body)
}

func TestRouterDeleteServiceRequestCascades(t *testing.T) {
	router := newRouter(t)

	status, _ := do(t, router, http.MethodPost, "/service_request", compositeFor(1, 1))
	require.Equal(t, http.StatusOK, status)

	status, body := do(t, router, http.MethodDelete, "/service_request/1", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message": "service request id: 1 successfully deleted."}`, body)

	status, body = do(t, router, http.MethodGet, "/service_item", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"count": 0, "service items": [], "message": "success"}`, body)

	status, body = do(t, router, http.MethodGet, "/comment", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"count": 0, "comments": [], "message": "success"}`, body)
}

func TestRouterUpdateOverwritesServiceItem(t *testing.T) {
	router := newRouter(t)

	status, _ := do(t, router, http.MethodPost, "/service_request", compositeFor(1, 1))
	require.Equal(t, http.StatusOK, status)

	status, body := do(t, router, http.MethodPut, "/service_item/1", `{
		"service_request_id": 1,
		"service_id": "S2",
		"service_type": "paint",
		"description": "walls",
		"quantity": 3,
		"unit_price": "7.25"
	}`)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message": "service item id: 1 successfully updated"}`, body)

	status, body = do(t, router, http.MethodGet, "/service_item/1", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{
		"message": "success",
		"service item": {
			"service_request_id": 1,
			"id": 1,
			"service_id": "S2",
			"service_type": "paint",
			"description": "walls",
			"quantity": 3,
			"unit_price": "7.25"
		}
	}`, body)
}

func TestRouterNotFound(t *testing.T) {
	router := newRouter(t)
	resources := map[string]string{
		"/employee":        "employee",
		"/service":         "service",
		"/service_request": "service request",
		"/service_item":    "service item",
		"/comment":         "comment",
	}

	for path, resource := range resources {
		t.Run(resource, func(t *testing.T) {
			for _, method := range []string{http.MethodGet, http.MethodDelete} {
				status, body := do(t, router, method, path+"/12345", "")
				require.Equal(t, http.StatusNotFound, status)
				require.JSONEq(t, `{"error": "`+resource+` not found"}`, body)
			}

			status, _ := do(t, router, http.MethodPut, path+"/12345", `{}`)
			require.Equal(t, http.StatusNotFound, status)

			status, _ = do(t, router, http.MethodGet, path+"/abc", "")
			require.Equal(t, http.StatusNotFound, status)
		})
	}
}

func TestRouterRejectsNonJSON(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{"/employee", "/service", "/service_request", "/service_item", "/comment"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("hello"))
		req.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, path)
		require.JSONEq(t, `{"error": "The request payload is not in JSON format"}`, w.Body.String(), path)
	}

	status, body := do(t, router, http.MethodGet, "/employee", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `"count":0`)
}

func TestRouterCORS(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/service", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterMetrics(t *testing.T) {
	router := newRouter(t)

	status, _ := do(t, router, http.MethodGet, "/service/7", "")
	require.Equal(t, http.StatusNotFound, status)

	status, body := do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "servicedesk_http_requests_total")
	require.Contains(t, body, `route="/service/{id}"`)
	require.Contains(t, body, `status="404"`)
}
