package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/httputil"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
)

// Bodies carry uploads as data URIs, so documents can be large.
const maxBodyBytes = 16 << 20

// resourceHandler serves one collection stored as JSON bodies.
type resourceHandler[T federation.Record[T, K], K comparable] struct {
	kind   string
	store  *store.RecordStore
	check  func(*T) error
	gender func(*T) string
}

func mountResource[T federation.Record[T, K], K comparable](r chi.Router, path string, h *resourceHandler[T, K]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *resourceHandler[T, K]) list(w http.ResponseWriter, r *http.Request) {
	gender := r.URL.Query().Get("gender")
	if gender != "" && gender != string(federation.Men) && gender != string(federation.Women) {
		httputil.JSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown gender %q", gender), nil)
		return
	}

	records, err := h.store.List(r.Context(), h.kind, gender)
	if err != nil {
		httputil.JSONError(w, http.StatusInternalServerError, "Failed to list "+h.kind, err)
		return
	}

	items := make([]T, 0, len(records))
	for _, rec := range records {
		var item T
		if err := json.Unmarshal([]byte(rec.Body), &item); err != nil {
			httputil.JSONError(w, http.StatusInternalServerError, "Corrupt "+h.kind+" record "+rec.RecordID, err)
			return
		}
		items = append(items, item)
	}
	httputil.JSON(w, http.StatusOK, items)
}

func (h *resourceHandler[T, K]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var item T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return item, false
	}
	if err := httputil.Validate(item); err != nil {
		httputil.JSONValidationError(w, err)
		return item, false
	}
	if h.check != nil {
		if err := h.check(&item); err != nil {
			httputil.JSONError(w, http.StatusBadRequest, err.Error(), nil)
			return item, false
		}
	}
	return item, true
}

func (h *resourceHandler[T, K]) create(w http.ResponseWriter, r *http.Request) {
	item, ok := h.decode(w, r)
	if !ok {
		return
	}

	gender := ""
	if h.gender != nil {
		gender = h.gender(&item)
	}

	_, err := h.store.Create(r.Context(), h.kind, gender, func(id string) ([]byte, error) {
		n, err := federation.ParseIntKey(id)
		if err != nil {
			return nil, err
		}
		item = item.WithNumericID(n)
		return json.Marshal(item)
	})
	if err != nil {
		httputil.JSONError(w, http.StatusInternalServerError, "Failed to create "+h.kind, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, item)
}

func (h *resourceHandler[T, K]) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, ok := h.decode(w, r)
	if !ok {
		return
	}
	if fmt.Sprint(item.Key()) != id {
		httputil.JSONError(w, http.StatusBadRequest, fmt.Sprintf("body id %v does not match path id %s", item.Key(), id), nil)
		return
	}

	body, err := json.Marshal(item)
	if err != nil {
		httputil.JSONError(w, http.StatusInternalServerError, "Failed to encode "+h.kind, err)
		return
	}
	if _, err := h.store.Update(r.Context(), h.kind, id, body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			httputil.JSONError(w, http.StatusNotFound, h.kind+" "+id+" not found", err)
			return
		}
		httputil.JSONError(w, http.StatusInternalServerError, "Failed to update "+h.kind, err)
		return
	}
	httputil.JSON(w, http.StatusOK, item)
}

func (h *resourceHandler[T, K]) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), h.kind, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			httputil.JSONError(w, http.StatusNotFound, h.kind+" "+id+" not found", err)
			return
		}
		httputil.JSONError(w, http.StatusInternalServerError, "Failed to delete "+h.kind, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func checkMatch(m *federation.Match) error { return m.Validate() }

func checkPlayer(p *federation.Player) error {
	if p.Gender != "" && p.Gender != federation.Men && p.Gender != federation.Women {
		return fmt.Errorf("unknown gender %q", p.Gender)
	}
	return nil
}

func playerGender(p *federation.Player) string {
	if p.Gender == "" {
		p.Gender = federation.Men
	}
	return string(p.Gender)
}
