package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID          primitive.ObjectID `json:"productId,omitempty" bson:"_id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Brand       string             `bson:"brand" json:"brand"`
	Description string             `bson:"description" json:"description"`
	Quantity    int                `bson:"quantity" json:"quantity" validate:"required,min=1"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Images      []string           `bson:"images" json:"images"`
}
