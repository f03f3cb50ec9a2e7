package handlers

import (
	"net/http"

	"github.com/hmcts/et-multiples-api/config"
	"github.com/hmcts/et-multiples-api/models"
	"github.com/hmcts/et-multiples-api/multiples"
)

// TransferHandler exported for testing purposes
type TransferHandler struct {
	Service *multiples.Service
}

// TransferHandler moves every member case to another office in the same
// country
func (t TransferHandler) TransferHandler(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	country, err := multiples.ParseCountry(req.Country)
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	res, err := t.Service.Transfer(r.Context(), country, multipleRef(r), req)
	if err != nil {
		bulkErrorStatus("failed to transfer multiple", w, err)
		return
	}
	writeBulkResponse(w, res)
}

// TransferCountryHandler moves member cases to the other jurisdiction
func (t TransferHandler) TransferCountryHandler(w http.ResponseWriter, r *http.Request) {
	var req models.TransferCountryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	country, err := multiples.ParseCountry(req.Country)
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	res, err := t.Service.TransferCountry(r.Context(), country, multipleRef(r), req)
	if err != nil {
		bulkErrorStatus("failed to transfer multiple to other country", w, err)
		return
	}
	writeBulkResponse(w, res)
}
