package models

// Request and response payloads for the bulk callback endpoints. Every
// request names the country so the right per-country behaviour is selected
// once at the edge of the request.

// CreateMultipleRequest creates a new multiple from a batch of candidate cases
type CreateMultipleRequest struct {
	Name         string   `json:"name" validate:"required"`
	Country      string   `json:"country" validate:"required,oneof=englandwales scotland"`
	Source       string   `json:"source" validate:"omitempty,oneof='Manually Created' 'Imported' 'Online'"`
	CaseRefs     []string `json:"caseRefs" validate:"required,min=1"`
	LeadCaseRef  string   `json:"leadCaseRef"`
	SubMultiples []string `json:"subMultiples"`
}

// AmendCasesRequest adds cases to an existing multiple
type AmendCasesRequest struct {
	Country     string   `json:"country" validate:"required,oneof=englandwales scotland"`
	CaseRefs    []string `json:"caseRefs" validate:"required,min=1"`
	SubMultiple string   `json:"subMultiple"`
}

// RemoveCasesRequest removes cases from a multiple's ledger
type RemoveCasesRequest struct {
	Country  string   `json:"country" validate:"required,oneof=englandwales scotland"`
	CaseRefs []string `json:"caseRefs" validate:"required,min=1"`
}

// SubMultipleRequest moves cases to a registered sub-multiple
type SubMultipleRequest struct {
	Country     string   `json:"country" validate:"required,oneof=englandwales scotland"`
	CaseRefs    []string `json:"caseRefs" validate:"required,min=1"`
	SubMultiple string   `json:"subMultiple" validate:"required"`
}

// PreAcceptRequest pre-accepts member cases, optionally a subset
type PreAcceptRequest struct {
	Country  string   `json:"country" validate:"required,oneof=englandwales scotland"`
	CaseRefs []string `json:"caseRefs"`
}

// BatchUpdateRequest overwrites a sparse set of fields on member cases
type BatchUpdateRequest struct {
	Country  string            `json:"country" validate:"required,oneof=englandwales scotland"`
	Changes  map[string]string `json:"changes" validate:"required,min=1"`
	CaseRefs []string          `json:"caseRefs"`
}

// CloseMultipleRequest closes a multiple and all its member cases
type CloseMultipleRequest struct {
	Country      string `json:"country" validate:"required,oneof=englandwales scotland"`
	FileLocation string `json:"fileLocation"`
	Clerk        string `json:"clerk"`
}

// FixMultipleRequest repairs ledger drift on a multiple
type FixMultipleRequest struct {
	Country string `json:"country" validate:"required,oneof=englandwales scotland"`
}

// TransferRequest moves all member cases to another office in the same country
type TransferRequest struct {
	Country      string `json:"country" validate:"required,oneof=englandwales scotland"`
	TargetOffice string `json:"targetOffice" validate:"required"`
	Reason       string `json:"reason"`
}

// TransferCountryRequest moves member cases to the other supported jurisdiction
type TransferCountryRequest struct {
	Country       string `json:"country" validate:"required,oneof=englandwales scotland"`
	TargetCountry string `json:"targetCountry" validate:"required,oneof=englandwales scotland"`
	TargetOffice  string `json:"targetOffice" validate:"required"`
	Reason        string `json:"reason"`
	RelinkECC     bool   `json:"relinkEcc"`
}

// DocumentRequest renders a schedule or letters for member cases
type DocumentRequest struct {
	Country    string   `json:"country" validate:"required,oneof=englandwales scotland"`
	TemplateID string   `json:"templateId" validate:"required"`
	Kind       string   `json:"kind" validate:"required,oneof=schedule letter"`
	CaseRefs   []string `json:"caseRefs"`
}

// BulkResponse is the common response shape for every bulk action: the updated
// multiple aggregate, the ordered human-readable error list (empty on full
// success) and any generated document links.
type BulkResponse struct {
	Multiple      *MultipleDetails `json:"multiple,omitempty"`
	Errors        []string         `json:"errors"`
	DocumentLinks []string         `json:"documentLinks,omitempty"`
}
