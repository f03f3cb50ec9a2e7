package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/hmcts/et-multiples-api/api"
	"github.com/hmcts/et-multiples-api/config"
	"github.com/hmcts/et-multiples-api/databases"
	"github.com/hmcts/et-multiples-api/models"
	"github.com/hmcts/et-multiples-api/multiples"
)

// SingleCase exported for testing purposes
type SingleCase struct {
	DB databases.SingleCaseDatabase
}

// CaseByReferenceHandler returns a single case by its reference
func (s SingleCase) CaseByReferenceHandler(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["case_reference"]
	caseRef := raw
	if decoded, err := url.PathUnescape(raw); err == nil {
		caseRef = decoded
	}

	country, err := multiples.ParseCountry(r.URL.Query().Get("country"))
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}

	zap.S().Debugf("case_reference: %v", caseRef)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.FindByReference(ctx, string(country), multiples.NormalizeRef(caseRef))
	if err != nil {
		config.ErrorStatus("failed to get case by reference", http.StatusNotFound, w, err)
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

// CasesByMultipleHandler returns the member cases of a multiple, paginated
func (s SingleCase) CasesByMultipleHandler(w http.ResponseWriter, r *http.Request) {
	country, err := multiples.ParseCountry(r.URL.Query().Get("country"))
	if err != nil {
		config.ErrorStatus("invalid country", http.StatusBadRequest, w, err)
		return
	}
	ref := r.URL.Query().Get("multiple")
	if ref == "" {
		config.ErrorStatus("missing multiple query parameter", http.StatusBadRequest, w, nil)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		page = 0
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(page * limit)).
		SetSort(bson.M{"case.caseReference": 1})

	dbResp, err := s.DB.Find(ctx, bson.M{
		"case.country":           string(country),
		"case.multipleReference": multiples.NormalizeRef(ref),
	}, opts)
	if err != nil {
		config.ErrorStatus("failed to get cases by multiple", http.StatusNotFound, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.SingleCase{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
