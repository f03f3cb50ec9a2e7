package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Multiple source markers.
const (
	SourceManual   = "Manually Created"
	SourceImported = "Imported"
	SourceOnline   = "Online"
)

// Multiple workflow states.
const (
	MultipleStateOpen        = "Open"
	MultipleStateClosed      = "Closed"
	MultipleStateTransferred = "Transferred"
)

// Multiple holds the structure for the multiples collection in mongo
type Multiple struct {
	ID      string          `json:"_id" bson:"_id"`
	Details MultipleDetails `json:"multiple" bson:"multiple"`
	Version int32           `json:"__v" bson:"__v"`
}

// MultipleDetails holds the structure for the inner multiple document in mongo
type MultipleDetails struct {
	MultipleReference string             `json:"multipleReference" bson:"multipleReference"`
	Name              string             `json:"name" bson:"name"`
	Country           string             `json:"country" bson:"country"`
	Source            string             `json:"source" bson:"source"`
	State             string             `json:"state" bson:"state"`
	ManagingOffice    string             `json:"managingOffice" bson:"managingOffice"`
	LeadCaseRef       string             `json:"leadCaseRef,omitempty" bson:"leadCaseRef,omitempty"`
	CaseIDs           []CaseIDEntry      `json:"caseIds" bson:"caseIds"`
	SubMultiples      []SubMultiple      `json:"subMultiples" bson:"subMultiples"`
	CaseCount         int                `json:"caseCount" bson:"caseCount"`
	OfficeFlags       map[string]int     `json:"officeFlags" bson:"officeFlags"`
	ClerkFlags        map[string]int     `json:"clerkFlags" bson:"clerkFlags"`
	LocationFlags     map[string]int     `json:"locationFlags" bson:"locationFlags"`
	Errors            []string           `json:"errors" bson:"errors"`
	DocumentLink      string             `json:"documentLink,omitempty" bson:"documentLink,omitempty"`
	CreatedAt         primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt         primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// CaseIDEntry is one member of a multiple: a single case reference plus its
// optional sub-multiple label. An empty label means ungrouped.
type CaseIDEntry struct {
	CaseReference  string `json:"caseRef" bson:"caseRef"`
	SubMultiple    string `json:"subMultiple,omitempty" bson:"subMultiple,omitempty"`
	TransferredOut bool   `json:"transferredOut,omitempty" bson:"transferredOut,omitempty"`
}

// SubMultiple is a registered named partition of a multiple's membership
type SubMultiple struct {
	Name  string `json:"name" bson:"name"`
	Title string `json:"title,omitempty" bson:"title,omitempty"`
}
