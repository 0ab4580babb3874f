package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgUnauthorized  = "требуется заголовок X-User-ID"
	msgUnavailable   = "данные о доступности временно недоступны"
	msgTimeout       = "превышено время ожидания данных о доступности"

	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondJSON пишет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку в формате {"code", "message"}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondUnauthorized(w http.ResponseWriter) {
	RespondError(w, http.StatusUnauthorized, msgUnauthorized)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondUnavailable 503, хранилище недоступно, запрос можно повторить
func RespondUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, msgUnavailable)
}

// RespondTimeout 504, чтение данных не уложилось в таймаут
func RespondTimeout(w http.ResponseWriter) {
	RespondError(w, http.StatusGatewayTimeout, msgTimeout)
}

// DecodeJSON декодирует тело запроса, неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// QueryString возвращает query-параметр или nil, если он не задан
func QueryString(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil
	}
	return &value
}

// QueryInt разбирает целочисленный query-параметр, nil если он не задан
func QueryInt(r *http.Request, name string) (*int, error) {
	raw := QueryString(r, name)
	if raw == nil {
		return nil, nil
	}
	value, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &value, nil
}

// Locale выбирает язык пояснений: параметр lang, затем Accept-Language
func Locale(r *http.Request) string {
	if lang := QueryString(r, "lang"); lang != nil {
		return strings.ToLower(*lang)
	}
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return ""
	}
	first := strings.SplitN(header, ",", 2)[0]
	first = strings.SplitN(first, ";", 2)[0]
	first = strings.SplitN(first, "-", 2)[0]
	return strings.ToLower(strings.TrimSpace(first))
}
