package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/payload"
	"github.com/vasapolrittideah/upsy-api/shared/database"
	"github.com/vasapolrittideah/upsy-api/shared/utilities"
)

type healthHTTPHandler struct {
	pinger database.Pinger
}

func (h *healthHTTPHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	utilities.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *healthHTTPHandler) DBTest(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("database ping failed")
		utilities.WriteJSON(w, http.StatusInternalServerError, payload.MessageResponse{
			Message: "Database connection failed",
		})
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.MessageResponse{Message: "Database connection successful"})
}
