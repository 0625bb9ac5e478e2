package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-scout/internal/api/respond"
	"github.com/albapepper/scoracle-scout/internal/cache"
	"github.com/albapepper/scoracle-scout/internal/maintenance"
	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/store"
	"github.com/albapepper/scoracle-scout/internal/transfer"
)

// ListRecords returns stored records in capture order.
// @Summary List records
// @Description Returns raw scouting records, optionally filtered by team or match number substring.
// @Tags records
// @Produce json
// @Param search query string false "Team identity or match number substring"
// @Success 200 {array} match.Record
// @Router /records [get]
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	rev, err := h.revisionKey(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	h.serveCached(w, r, cache.Key("records", rev, search), cache.TTLRecords, func() (interface{}, error) {
		snap, err := h.store.Snapshot(r.Context())
		if err != nil {
			return nil, err
		}
		return match.Search(snap.Records, search), nil
	})
}

// GetRecord returns one record by id.
// @Summary Get record
// @Tags records
// @Produce json
// @Param id path string true "Record id"
// @Success 200 {object} match.Record
// @Failure 404 {object} respond.ErrorResponse
// @Router /records/{id} [get]
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.lookup(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, rec)
}

// PutRecord saves a record, replacing any record with the same id.
// @Summary Save record
// @Description Upserts a record. Missing id and timestamp are assigned.
// @Tags records
// @Accept json
// @Produce json
// @Param record body match.Record true "Scouting record"
// @Success 200 {object} match.Record
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /records [put]
func (h *Handler) PutRecord(w http.ResponseWriter, r *http.Request) {
	var rec match.Record
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&rec); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Body must be a scouting record", err.Error())
		return
	}
	if err := rec.Validate(); err != nil {
		respond.WriteErrorDetail(w, http.StatusUnprocessableEntity, "INVALID_RECORD", "Record failed validation", err.Error())
		return
	}

	saved, err := h.store.Upsert(r.Context(), rec)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.invalidate()
	respond.WriteJSONObject(w, http.StatusOK, saved)
}

// ImportRecords merges a JSON array of records into the store.
// @Summary Import records
// @Description Merges an exported JSON array. Known ids are replaced only by newer timestamps.
// @Tags records
// @Accept json
// @Produce json
// @Param records body []match.Record true "Exported records"
// @Success 200 {object} transfer.ImportResult
// @Failure 400 {object} respond.ErrorResponse
// @Router /records/import [post]
func (h *Handler) ImportRecords(w http.ResponseWriter, r *http.Request) {
	res, err := transfer.Import(r.Context(), h.store, http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if errors.Is(err, transfer.ErrInvalidFile) {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_FILE", "Expected a JSON array of records", err.Error())
		return
	}
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.invalidate()
	h.logger.Info("Records imported", "summary", res.Summary())
	respond.WriteJSONObject(w, http.StatusOK, res)
}

// ExportRecords downloads every record as a JSON array.
// @Summary Export records
// @Tags records
// @Produce json
// @Success 200 {array} match.Record
// @Router /records/export [get]
func (h *Handler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if _, err := transfer.Export(r.Context(), h.store, &buf); err != nil {
		h.writeErr(w, err)
		return
	}
	respond.WriteAttachment(w, "application/json", transfer.ExportFilename(time.Now()), buf.Bytes())
}

// ClearRecords deletes every record. When BACKUP_DIR is set the records are
// exported there first.
// @Summary Clear records
// @Tags records
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /records [delete]
func (h *Handler) ClearRecords(w http.ResponseWriter, r *http.Request) {
	if err := maintenance.BackupBeforeClear(r.Context(), h.store, h.cfg.BackupDir, h.logger); err != nil {
		h.writeErr(w, err)
		return
	}
	n, err := h.store.Clear(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.invalidate()
	h.logger.Info("Records cleared", "count", n)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"cleared": n})
}

// GetRecordQR renders a record as a QR code PNG.
// @Summary Record QR code
// @Description Encodes the record as compact JSON in a QR code for device-to-device transfer.
// @Tags records
// @Produce png
// @Param id path string true "Record id"
// @Param size query int false "Edge length in pixels (64-1024)" default(256)
// @Success 200 {file} binary
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /records/{id}/qr [get]
func (h *Handler) GetRecordQR(w http.ResponseWriter, r *http.Request) {
	size := transfer.QRSize
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 64 || n > 1024 {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_SIZE", "size must be an integer between 64 and 1024")
			return
		}
		size = n
	}

	rec, err := h.lookup(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	png, err := transfer.QRCode(rec, size)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	respond.WriteAttachment(w, "image/png", "", png)
}

func (h *Handler) lookup(r *http.Request) (match.Record, error) {
	id := chi.URLParam(r, "id")
	rec, err := h.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return match.Record{}, notFound("No record with id " + id)
	}
	return rec, err
}
