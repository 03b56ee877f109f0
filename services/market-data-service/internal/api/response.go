package api

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
)

const maxBodySize = 1 << 20

// Response is the envelope of every API answer.
type Response struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code string) int {
	switch errors.ErrorCode(code) {
	case errors.NotFoundError, errors.GeneralNotFoundError:
		return http.StatusNotFound
	case errors.MalformedTickError, errors.InvalidDepthLevelError, errors.GeneralBadRequestError:
		return http.StatusBadRequest
	case errors.SubscriptionLimitError:
		return http.StatusUnprocessableEntity
	case errors.StoreUnavailableError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	payload, err := sonic.Marshal(body)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func (a *API) success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{
		Status:    "success",
		Message:   "success",
		Code:      "ok",
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)
	if code == "" {
		code = errors.GeneralInternalServerError.String()
	}
	status := StatusFor(code)

	message := "internal server error"
	var details *errors.ErrorDetails
	if stderrors.As(err, &details) {
		message = details.Message
	}

	if status >= http.StatusInternalServerError {
		a.logger.ErrorContext(r.Context(), err,
			logger.NewField("path", r.URL.Path),
			logger.NewField("code", code),
		)
	}

	writeJSON(w, status, Response{
		Status:    "error",
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC(),
	})
}

func badRequest(message, field string) error {
	return errors.NewErrorDetails(message, errors.GeneralBadRequestError.String(), field)
}

func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return badRequest("failed to read request body", "body")
	}
	if err := sonic.Unmarshal(body, dst); err != nil {
		return badRequest("request body is not valid json", "body")
	}
	return nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, badRequest(key+" must be a non-negative integer", key)
	}
	return n, nil
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, badRequest(key+" must be an RFC3339 timestamp", key)
	}
	ts = ts.UTC()
	return &ts, nil
}

func queryList(r *http.Request, key string) []string {
	var out []string
	for _, part := range strings.Split(r.URL.Query().Get(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
