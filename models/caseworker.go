package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Caseworker holds the structure for the caseworkers collection in mongo
type Caseworker struct {
	ID      string            `json:"_id" bson:"_id"`
	Details CaseworkerDetails `json:"caseworker" bson:"caseworker"`
	Version int32             `json:"__v" bson:"__v"`
}

// CaseworkerDetails holds the structure for the inner caseworker document in mongo
type CaseworkerDetails struct {
	Email     string             `json:"email" bson:"email"`
	Name      string             `json:"name" bson:"name"`
	Password  string             `json:"password" bson:"password"`
	Offices   []string           `json:"offices" bson:"offices"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
