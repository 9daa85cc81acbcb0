package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Lead holds the structure for the leads collection in mongo. A lead is a
// sell-your-car form submission: customer contact details, a description of
// the offered vehicle and the URLs of the uploaded photos.
type Lead struct {
	ID           string             `json:"id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Phone        string             `json:"phone" bson:"phone"`
	Message      string             `json:"message" bson:"message"`
	Make         string             `json:"make" bson:"make"`
	Model        string             `json:"model" bson:"model"`
	Year         string             `json:"year" bson:"year"`
	Mileage      string             `json:"mileage" bson:"mileage"`
	ImageURLs    []string           `json:"imageUrls" bson:"imageUrls"`
	UploadErrors []string           `json:"uploadErrors,omitempty" bson:"uploadErrors,omitempty"`
	Status       string             `json:"status" bson:"status"`
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
