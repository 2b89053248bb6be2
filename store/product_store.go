package store

import (
	"context"
	"errors"

	"github.com/dhimanroyit/ssl-react-native-problem/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStore is the catalog read surface; checkout uses it to snapshot
// each cart line's product into the order.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, page, limit int64) ([]models.Product, int64, error)
}

type mongoProductStore struct {
	col *mongo.Collection
}

func NewProductStore(col *mongo.Collection) ProductStore {
	return &mongoProductStore{col: col}
}

func (s *mongoProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *mongoProductStore) List(ctx context.Context, page, limit int64) ([]models.Product, int64, error) {
	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * limit
	cursor, err := s.col.Find(ctx, bson.M{}, &options.FindOptions{
		Skip:  &skip,
		Limit: &limit,
	})
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, 0, err
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
