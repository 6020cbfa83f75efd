package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lexisync/lexisync/internal/logger"
	"github.com/lexisync/lexisync/internal/utils"
	"github.com/lexisync/lexisync/models"
)

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.upload").Msg("no account ID in context")
		http.Error(w, "no account ID was given", http.StatusUnauthorized)
		return
	}

	var req models.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.upload").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.SyncService.Upload(ctx, accountID, &req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.upload").Msg("error uploading snapshot")
		http.Error(w, "error uploading snapshot", statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.download").Msg("no account ID in context")
		http.Error(w, "no account ID was given", http.StatusUnauthorized)
		return
	}

	resp, err := h.services.SyncService.Download(ctx, accountID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.download").Msg("error downloading snapshot")
		http.Error(w, "error downloading snapshot", statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) forceSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.forceSync").Msg("no account ID in context")
		http.Error(w, "no account ID was given", http.StatusUnauthorized)
		return
	}

	var req models.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.forceSync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.SyncService.ForceSync(ctx, accountID, &req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.forceSync").Msg("error forcing full sync")
		http.Error(w, "error forcing full sync", statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) resolveConflicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.resolveConflicts").Msg("no account ID in context")
		http.Error(w, "no account ID was given", http.StatusUnauthorized)
		return
	}

	var req models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflicts").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.SyncService.ResolveConflicts(ctx, accountID, &req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflicts").Msg("error resolving conflicts")
		http.Error(w, "error resolving conflicts", statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.status").Msg("no account ID in context")
		http.Error(w, "no account ID was given", http.StatusUnauthorized)
		return
	}

	resp, err := h.services.SyncService.Status(ctx, accountID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.status").Msg("error getting sync status")
		http.Error(w, "error getting sync status", statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.history").Msg("no account ID in context")
		http.Error(w, "no account ID was given", http.StatusUnauthorized)
		return
	}

	// Malformed page/limit values fall back to the service defaults.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := h.services.SyncService.History(ctx, accountID, page, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.history").Msg("error getting snapshot history")
		http.Error(w, "error getting snapshot history", statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) cleanup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.cleanup").Msg("no account ID in context")
		http.Error(w, "no account ID was given", http.StatusUnauthorized)
		return
	}

	thresholdDays, _ := strconv.Atoi(r.URL.Query().Get("days"))

	resp, err := h.services.SyncService.Cleanup(ctx, accountID, thresholdDays)
	if err != nil {
		log.Err(err).Str("func", "*Handler.cleanup").Msg("error cleaning up sync data")
		http.Error(w, "error cleaning up sync data", statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listDevices").Msg("no account ID in context")
		http.Error(w, "no account ID was given", http.StatusUnauthorized)
		return
	}

	resp, err := h.services.SyncService.Devices(ctx, accountID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listDevices").Msg("error listing devices")
		http.Error(w, "error listing devices", statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) deactivateDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deactivateDevice").Msg("no account ID in context")
		http.Error(w, "no account ID was given", http.StatusUnauthorized)
		return
	}

	deviceID := chi.URLParam(r, "deviceID")
	if deviceID == "" {
		log.Error().Str("func", "*Handler.deactivateDevice").Msg("no device ID was given")
		http.Error(w, "no device ID was given", http.StatusBadRequest)
		return
	}

	if err := h.services.SyncService.DeactivateDevice(ctx, accountID, deviceID); err != nil {
		log.Err(err).Str("func", "*Handler.deactivateDevice").Msg("error deactivating device")
		http.Error(w, "error deactivating device", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
