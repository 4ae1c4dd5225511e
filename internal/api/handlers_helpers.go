// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/inkwell-hq/inkwell/internal/database"
	"github.com/inkwell-hq/inkwell/internal/logging"
	"github.com/inkwell-hq/inkwell/internal/models"
	"github.com/inkwell-hq/inkwell/internal/validation"
)

// respondJSON sends a response in the standard envelope with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess sends a success envelope.
func respondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError sends a failure envelope. The underlying error is logged
// server-side and never echoed to clients.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Int("status", status).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}
	respondJSON(w, status, &models.APIResponse{
		Success: false,
		Message: message,
	})
}

// respondValidationError sends the 400 envelope with the field-error list.
func respondValidationError(w http.ResponseWriter, fields []models.FieldError) {
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Success: false,
		Message: "Validation error",
		Errors:  fields,
	})
}

// respondStoreError maps database sentinel errors to the HTTP taxonomy.
// notFoundMessage customizes the 404 text per resource.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, r, http.StatusNotFound, notFoundMessage, nil)
	case errors.Is(err, database.ErrDuplicate):
		respondError(w, r, http.StatusConflict, "Duplicate value for a unique field", err)
	default:
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
	}
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields
// and enforcing the configured size cap. Returns false after writing the 400
// response when decoding fails.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Server.MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondValidationError(w, []models.FieldError{{Field: "", Message: decodeErrorMessage(err)}})
		return false
	}
	return true
}

// validateBody runs struct validation, writing the 400 response on failure.
func validateBody(w http.ResponseWriter, v interface{}) bool {
	if verr := validation.ValidateStruct(v); verr != nil {
		respondValidationError(w, verr.FieldErrors())
		return false
	}
	return true
}

// decodeErrorMessage turns decoder errors into client-safe messages.
func decodeErrorMessage(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "unknown field") {
		return "request contains an unknown field"
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return "request body too large"
	}
	return "invalid JSON payload"
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// sanitizeLogValue replaces control characters so request-derived strings
// cannot forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
