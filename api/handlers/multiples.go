package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hmcts/et-multiples-api/api"
	"github.com/hmcts/et-multiples-api/config"
	"github.com/hmcts/et-multiples-api/databases"
	"github.com/hmcts/et-multiples-api/models"
	"github.com/hmcts/et-multiples-api/multiples"
)

var validate = validator.New()

// MultipleHandler exported for testing purposes
type MultipleHandler struct {
	Service *multiples.Service
}

// multipleRef pulls the URL-encoded multiple reference out of the route
func multipleRef(r *http.Request) string {
	raw := mux.Vars(r)["multiple_reference"]
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// decodeAndValidate decodes a JSON body into v and runs payload validation
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return false
	}
	if err := validate.Struct(v); err != nil {
		config.ErrorStatus("invalid request body", http.StatusBadRequest, w, err)
		return false
	}
	return true
}

// writeBulkResponse marshals the common bulk action response. Per-case
// failures are carried in the errors list with a 200; only structural
// failures map to error statuses.
func writeBulkResponse(w http.ResponseWriter, res *multiples.Result) {
	resp := models.BulkResponse{
		Errors:        res.Errors,
		DocumentLinks: res.DocumentLinks,
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if res.Multiple != nil {
		resp.Multiple = &res.Multiple.Details
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// bulkErrorStatus maps a structural bulk failure to an HTTP status
func bulkErrorStatus(message string, w http.ResponseWriter, err error) {
	if errors.Is(err, databases.ErrNotFound) {
		config.ErrorStatus(message, http.StatusNotFound, w, err)
		return
	}
	if errors.Is(err, databases.ErrVersionConflict) {
		config.ErrorStatus(message, http.StatusConflict, w, err)
		return
	}
	config.ErrorStatus(message, http.StatusInternalServerError, w, err)
}

// CreateMultipleHandler creates a new multiple from a batch of case refs
func (m MultipleHandler) CreateMultipleHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMultipleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	country, err := multiples.ParseCountry(req.Country)
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := m.Service.Create(ctx, country, req)
	if err != nil {
		bulkErrorStatus("failed to create multiple", w, err)
		return
	}
	writeBulkResponse(w, res)
}

// GetMultipleHandler returns a multiple by reference
func (m MultipleHandler) GetMultipleHandler(w http.ResponseWriter, r *http.Request) {
	country, err := multiples.ParseCountry(r.URL.Query().Get("country"))
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := m.Service.GetMultiple(ctx, country, multipleRef(r))
	if err != nil {
		bulkErrorStatus("failed to get multiple by reference", w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AmendCasesHandler adds cases to an existing multiple
func (m MultipleHandler) AmendCasesHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AmendCasesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	country, err := multiples.ParseCountry(req.Country)
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := m.Service.AmendCases(ctx, country, multipleRef(r), req)
	if err != nil {
		bulkErrorStatus("failed to amend cases", w, err)
		return
	}
	writeBulkResponse(w, res)
}

// RemoveCasesHandler removes ledger entries from a multiple
func (m MultipleHandler) RemoveCasesHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RemoveCasesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	country, err := multiples.ParseCountry(req.Country)
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := m.Service.RemoveCases(ctx, country, multipleRef(r), req)
	if err != nil {
		bulkErrorStatus("failed to remove cases", w, err)
		return
	}
	writeBulkResponse(w, res)
}

// MoveSubMultipleHandler relabels members to a sub-multiple
func (m MultipleHandler) MoveSubMultipleHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SubMultipleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	country, err := multiples.ParseCountry(req.Country)
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := m.Service.MoveSubMultiple(ctx, country, multipleRef(r), req)
	if err != nil {
		bulkErrorStatus("failed to move cases to sub-multiple", w, err)
		return
	}
	writeBulkResponse(w, res)
}

// PreAcceptHandler moves member cases into the Accepted state
func (m MultipleHandler) PreAcceptHandler(w http.ResponseWriter, r *http.Request) {
	var req models.PreAcceptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	country, err := multiples.ParseCountry(req.Country)
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	res, err := m.Service.PreAccept(r.Context(), country, multipleRef(r), req)
	if err != nil {
		bulkErrorStatus("failed to pre-accept cases", w, err)
		return
	}
	writeBulkResponse(w, res)
}

// BatchUpdateHandler applies field changes across member cases
func (m MultipleHandler) BatchUpdateHandler(w http.ResponseWriter, r *http.Request) {
	var req models.BatchUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	country, err := multiples.ParseCountry(req.Country)
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	res, err := m.Service.BatchUpdate(r.Context(), country, multipleRef(r), req)
	if err != nil {
		bulkErrorStatus("failed to batch update cases", w, err)
		return
	}
	writeBulkResponse(w, res)
}

// CloseMultipleHandler closes the multiple and its member cases
func (m MultipleHandler) CloseMultipleHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CloseMultipleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	country, err := multiples.ParseCountry(req.Country)
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	res, err := m.Service.Close(r.Context(), country, multipleRef(r), req)
	if err != nil {
		bulkErrorStatus("failed to close multiple", w, err)
		return
	}
	writeBulkResponse(w, res)
}

// FixMultipleHandler repairs ledger drift on a multiple
func (m MultipleHandler) FixMultipleHandler(w http.ResponseWriter, r *http.Request) {
	var req models.FixMultipleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	country, err := multiples.ParseCountry(req.Country)
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	res, err := m.Service.Fix(r.Context(), country, multipleRef(r), req)
	if err != nil {
		bulkErrorStatus("failed to fix multiple", w, err)
		return
	}
	writeBulkResponse(w, res)
}

// RefreshFlagsHandler recomputes the selection-list aggregates
func (m MultipleHandler) RefreshFlagsHandler(w http.ResponseWriter, r *http.Request) {
	country, err := multiples.ParseCountry(r.URL.Query().Get("country"))
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	res, err := m.Service.RefreshFlags(r.Context(), country, multipleRef(r))
	if err != nil {
		bulkErrorStatus("failed to refresh flags", w, err)
		return
	}
	zap.S().Debugw("flags refreshed", "multipleReference", multipleRef(r))
	writeBulkResponse(w, res)
}
