package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/netzero/models"
	"p9e.in/netzero/pkg/carbon"
)

// The factor resolver and aggregator are built once from the static
// configuration; both are read-only after construction.
var (
	resolver   = carbon.NewResolver(carbon.DefaultConfig())
	aggregator = carbon.NewAggregator(carbon.DefaultPalette())
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDomainError maps the core error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var aborted *carbon.TransactionAbortedError
	switch {
	case errors.As(err, &aborted),
		errors.Is(err, carbon.ErrInvalidInput),
		errors.Is(err, carbon.ErrReferenceNotFound),
		errors.Is(err, carbon.ErrInsufficientBalance):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "record not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// siteByID resolves a site reference within the given transaction. Missing or
// malformed references are hard failures; ingestion never falls back to a
// default site.
func siteByID(tx *gorm.DB, id string) (*models.Site, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: site_id is required", carbon.ErrInvalidInput)
	}
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: site id %q is not a valid uuid", carbon.ErrInvalidInput, id)
	}

	var site models.Site
	if err := tx.First(&site, "id = ?", sid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: site '%s' is not registered", carbon.ErrReferenceNotFound, id)
		}
		return nil, err
	}
	return &site, nil
}
