// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"net/http"
	"time"
)

// healthData is the payload of GET /api/health.
type healthData struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	UptimeSec int64  `json:"uptimeSeconds"`
}

// Health handles GET /api/health. Liveness plus a store ping; a failing ping
// answers 500 so orchestrators restart the process instead of routing to a
// dead database connection.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, r, http.StatusInternalServerError, "Database unreachable", err)
		return
	}

	respondSuccess(w, http.StatusOK, "", healthData{
		Status:    "OK",
		Message:   "Inkwell API is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		UptimeSec: int64(time.Since(h.startTime).Seconds()),
	})
}
