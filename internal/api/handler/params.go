package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/blaisecz/wellness-forecast/internal/api/validation"
	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/pkg/problem"
)

// forecastQuery holds the optional forecast method query parameter.
type forecastQuery struct {
	Method string `query:"method" validate:"omitempty,forecastmethod"`
}

// parseMethod reads ?method=. An empty value means the service default.
func parseMethod(r *http.Request) (domain.ForecastMethod, []problem.FieldError) {
	q := forecastQuery{Method: r.URL.Query().Get("method")}
	if fieldErrors := validation.Validate(q); fieldErrors != nil {
		return "", fieldErrors
	}
	return domain.ForecastMethod(q.Method), nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultValue int) (int, bool) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultValue, true
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue, false
	}
	return parsed, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
