// internal/api/handler/hydration.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"hydroflow-bot/internal/api/types"
	"hydroflow-bot/internal/domain"
	"hydroflow-bot/internal/service"
	"hydroflow-bot/internal/util"
)

// HydrationHandler exposes the bot over HTTP for the chat transport.
type HydrationHandler struct {
	service    service.HydrationService
	dispatcher *service.Dispatcher
	logger     *zap.Logger
}

// NewHydrationHandler creates a new HydrationHandler.
func NewHydrationHandler(svc service.HydrationService, dispatcher *service.Dispatcher, logger *zap.Logger) *HydrationHandler {
	return &HydrationHandler{
		service:    svc,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// MessageRequest is an inbound chat message already stripped of transport details.
type MessageRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

// HandleMessage dispatches an inbound message.
// POST /messages
func (h *HydrationHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.UserID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	replies, err := h.dispatcher.HandleMessage(r.Context(), req.UserID, req.Text)
	if err != nil {
		if replies == nil {
			respondWithError(w, h.logger, err)
			return
		}
		// Replies were produced but delivery failed for at least one.
		h.logger.Warn("Failed to deliver replies", zap.Int64("user_id", req.UserID), zap.Error(err))
		respondWithJSON(w, h.logger, http.StatusBadGateway, types.MessageResponse{
			Notifications: replies,
			Error:         "Failed to deliver replies",
		})
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.MessageResponse{Notifications: replies})
}

// GetTotal reports the user's intake against their goal.
// GET /users/{userID}/total
func (h *HydrationHandler) GetTotal(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, progress)
}

// GetHistory returns the user's journaled intake events.
// GET /users/{userID}/history?limit=&offset=
func (h *HydrationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = service.DefaultHistoryLimit
	}
	if limit > 100 {
		limit = 100
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	events, total, err := h.service.GetIntakeHistory(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.PaginatedResponse[domain.IntakeEvent]{
		Data:       events,
		Limit:      limit,
		Offset:     offset,
		TotalCount: total,
	})
}
