package handlers

import (
	"net/http"

	"github.com/hmcts/et-multiples-api/config"
	"github.com/hmcts/et-multiples-api/models"
	"github.com/hmcts/et-multiples-api/multiples"
)

// DocumentHandler exported for testing purposes
type DocumentHandler struct {
	Service *multiples.Service
}

// GenerateDocumentsHandler renders a schedule or per-case letters for the
// multiple's members and returns the artifact links
func (d DocumentHandler) GenerateDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.DocumentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	country, err := multiples.ParseCountry(req.Country)
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	res, err := d.Service.GenerateDocuments(r.Context(), country, multipleRef(r), req)
	if err != nil {
		bulkErrorStatus("failed to generate documents", w, err)
		return
	}
	writeBulkResponse(w, res)
}
