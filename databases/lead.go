package databases

// go generate: mockery --name LeadDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

const leadName = "leads"

// LeadDatabase contains the methods to use with the lead database
type LeadDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Lead, error)
	Find(ctx context.Context, filter interface{}) ([]models.Lead, error)
	InsertOne(ctx context.Context, lead models.Lead) (interface{}, error)
	UpdateStatus(ctx context.Context, leadID, status string) error
	Delete(ctx context.Context, leadID string) error
}

type leadDatabase struct {
	db DatabaseHelper
}

// NewLeadDatabase initializes a new instance of lead database with the provided db connection
func NewLeadDatabase(db DatabaseHelper) LeadDatabase {
	return &leadDatabase{
		db: db,
	}
}

func (c *leadDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Lead, error) {
	lead := &models.Lead{}
	err := c.db.Collection(leadName).FindOne(ctx, filter).Decode(&lead)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (c *leadDatabase) Find(ctx context.Context, filter interface{}) ([]models.Lead, error) {
	var leads []models.Lead
	err := c.db.Collection(leadName).Find(ctx, filter).Decode(&leads)
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (c *leadDatabase) InsertOne(ctx context.Context, lead models.Lead) (interface{}, error) {
	res := c.db.Collection(leadName).InsertOne(ctx, lead)
	return res.Decode(), nil
}

func (c *leadDatabase) UpdateStatus(ctx context.Context, leadID, status string) error {
	update := bson.M{"$set": bson.M{"status": status}}
	return c.db.Collection(leadName).UpdateOne(ctx, bson.M{"_id": leadID}, update)
}

func (c *leadDatabase) Delete(ctx context.Context, leadID string) error {
	return c.db.Collection(leadName).DeleteOne(ctx, bson.M{"_id": leadID})
}
