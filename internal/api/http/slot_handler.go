package http

import (
	"net/http"
	"time"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/service"

	"github.com/gorilla/mux"
)

// SlotHandler exposes vehicle availability. Slots are anonymized: callers see
// the blocked intervals, never who booked them.
type SlotHandler struct {
	slotSvc service.SlotService
}

func NewSlotHandler(slotSvc service.SlotService) *SlotHandler {
	return &SlotHandler{slotSvc: slotSvc}
}

type slotDTO struct {
	TimeFrom time.Time `json:"time_from"`
	TimeTo   time.Time `json:"time_to"`
}

func (h *SlotHandler) ListForVehicle(w http.ResponseWriter, r *http.Request) {
	after := time.Now()
	if raw := r.URL.Query().Get("after"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Code: domain.CodeInvalidRequest, Message: "after must be RFC3339"})
			return
		}
		after = parsed
	}
	slots, err := h.slotSvc.ListActive(r.Context(), mux.Vars(r)["id"], after)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]slotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotDTO{TimeFrom: s.TimeFrom, TimeTo: s.TimeTo})
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": out})
}
