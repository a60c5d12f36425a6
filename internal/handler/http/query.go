package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// idParam reads a UUID path parameter, naming it in the validation error
// when malformed.
func idParam(r *http.Request, name string) (string, error) {
	id := chi.URLParam(r, name)
	if !validator.IsValidUUID(id) {
		var errs validator.ValidationErrors
		errs.Add(name, "must be a valid UUID")
		return "", errs
	}
	return id, nil
}

// pagination reads page and limit, leaving zero for the service default.
func pagination(r *http.Request) (page, limit int) {
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	return page, limit
}

func boolQuery(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
