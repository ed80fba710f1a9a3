package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"servicedesk/db"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// NotJSONMessage - тело ответа, если запрос пришел не в JSON (отдается со статусом 200)
const NotJSONMessage = "The request payload is not in JSON format"

const maxBodyBytes = 1048576

// Handler оборачивает хранилище для доступа к данным
type Handler struct {
	Store    StorageInterface
	log      logrus.FieldLogger
	validate *validator.Validate
}

// NewHandler создает новый Handler
func NewHandler(store StorageInterface, logger logrus.FieldLogger) *Handler {
	v := validator.New()
	// в ошибках валидации нужны имена ключей JSON, а не полей структуры
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{Store: store, log: logger, validate: v}
}

// PingHandler отвечает на GET / для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Hello, World!"))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, format string, args ...interface{}) {
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf(format, args...)})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// isJSON повторяет проверку "application/json или application/*+json"
func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/json" || (strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}

// decodeBody читает JSON-тело в dst и проверяет, что все ожидаемые ключи на месте.
// При ошибке ответ уже записан, вызывающий просто выходит.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if !isJSON(r) {
		writeError(w, http.StatusOK, NotJSONMessage)
		return false
	}

	// Ограничение размера тела, чтобы избежать DoS
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.serverError(w, r, "Failed to read request body", err)
		return false
	}
	defer r.Body.Close()

	if err := json.Unmarshal(body, dst); err != nil {
		h.serverError(w, r, "Invalid JSON format", err)
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			h.serverError(w, r, "missing required field: "+verrs[0].Field(), err)
			return false
		}
		h.serverError(w, r, "Invalid request body", err)
		return false
	}
	return true
}

// serverError логирует причину и отвечает 500
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.log.WithError(err).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error(msg)
	writeError(w, http.StatusInternalServerError, msg)
}

// storeError различает отсутствующую строку (404) и прочие сбои БД (500)
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, resource string, err error) {
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, resource+" not found")
		return
	}
	h.serverError(w, r, "Failed to access "+resource, err)
}

// parseID достает {id} из пути; нечисловой id - это тоже "не найдено"
func parseID(w http.ResponseWriter, r *http.Request, resource string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, resource+" not found")
		return 0, false
	}
	return id, true
}
