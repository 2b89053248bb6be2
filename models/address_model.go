package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DeliveryAddress is the recipient snapshot embedded in an order,
// immutable after creation.
type DeliveryAddress struct {
	FullName      string `json:"fullName,omitempty" bson:"fullName,omitempty"`
	PhoneNumber   string `json:"phoneNumber" bson:"phoneNumber"`
	StreetAddress string `json:"streetAddress" bson:"streetAddress"`
}

type Address struct {
	Id             primitive.ObjectID `json:"id" bson:"_id"`
	UserId         primitive.ObjectID `json:"userId" bson:"userId"`
	FullName       string             `json:"fullName,omitempty" bson:"fullName,omitempty"`
	PhoneNumber    string             `json:"phoneNumber" bson:"phoneNumber"`
	StreetAddress  string             `json:"streetAddress" bson:"streetAddress"`
	City           string             `json:"city" bson:"city"`
	ZipCode        string             `json:"zipCode" bson:"zipCode"`
	IsUserSelected bool               `json:"isUserSelected" bson:"isUserSelected"`
}
