package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workflow states for a single tribunal case.
const (
	StateSubmitted   = "Submitted"
	StateAccepted    = "Accepted"
	StateRejected    = "Rejected"
	StateClosed      = "Closed"
	StateTransferred = "Transferred"
)

// SingleCase holds the structure for the cases collection in mongo
type SingleCase struct {
	ID      string      `json:"_id" bson:"_id"`
	Details CaseDetails `json:"case" bson:"case"`
	Version int32       `json:"__v" bson:"__v"`
}

// CaseDetails holds the structure for the inner case document in mongo
type CaseDetails struct {
	CaseReference      string             `json:"caseReference" bson:"caseReference"`
	Country            string             `json:"country" bson:"country"`
	ManagingOffice     string             `json:"managingOffice" bson:"managingOffice"`
	State              string             `json:"state" bson:"state"`
	MultipleReference  string             `json:"multipleReference" bson:"multipleReference"`
	PositionType       string             `json:"positionType" bson:"positionType"`
	Clerk              string             `json:"clerk" bson:"clerk"`
	FileLocation       string             `json:"fileLocation" bson:"fileLocation"`
	ClaimantName       string             `json:"claimantName" bson:"claimantName"`
	RespondentName     string             `json:"respondentName" bson:"respondentName"`
	Flags              []string           `json:"flags" bson:"flags"`
	CounterClaim       string             `json:"counterClaim,omitempty" bson:"counterClaim,omitempty"`
	LinkedCaseRef      string             `json:"linkedCaseRef,omitempty" bson:"linkedCaseRef,omitempty"`
	TransferredOut     bool               `json:"transferredOut" bson:"transferredOut"`
	TransferDest       string             `json:"transferDest,omitempty" bson:"transferDest,omitempty"`
	TransferDestOffice string             `json:"transferDestOffice,omitempty" bson:"transferDestOffice,omitempty"`
	TransferReason     string             `json:"transferReason,omitempty" bson:"transferReason,omitempty"`
	CreatedAt          primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt          primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
