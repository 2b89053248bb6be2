package store

import (
	"context"
	"errors"
	"time"

	"github.com/dhimanroyit/ssl-react-native-problem/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrOrderNotFound = errors.New("order not found")

// Resolution is the terminal outcome applied to a pending order when a
// gateway callback arrives.
type Resolution struct {
	OrderStatus   models.OrderStatus
	PaymentStatus models.PaymentStatus
	Paid          models.PaymentAmount
	Payable       models.PaymentAmount
}

type ListOptions struct {
	Page   int64
	Limit  int64
	Status models.OrderStatusType
}

// OrderStore is the persisted order collection. Resolve applies only
// while the order is still pending, which makes callback replays safe.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByTransactionID(ctx context.Context, tranID string) (*models.Order, error)
	Resolve(ctx context.Context, tranID string, res Resolution) (bool, error)
	FindByID(ctx context.Context, orderID, userID primitive.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]models.Order, int64, error)
}

type mongoOrderStore struct {
	col *mongo.Collection
}

func NewOrderStore(col *mongo.Collection) OrderStore {
	return &mongoOrderStore{col: col}
}

func (s *mongoOrderStore) Insert(ctx context.Context, order *models.Order) error {
	_, err := s.col.InsertOne(ctx, order)
	return err
}

func (s *mongoOrderStore) FindByTransactionID(ctx context.Context, tranID string) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"payment.transactionId": tranID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Resolve reports whether the update was applied; false means the order
// was already resolved (or never existed) and nothing changed.
func (s *mongoOrderStore) Resolve(ctx context.Context, tranID string, res Resolution) (bool, error) {
	result, err := s.col.UpdateOne(
		ctx,
		bson.M{
			"payment.transactionId": tranID,
			"orderStatus.type":      models.OrderPending,
		},
		bson.M{
			"$set": bson.M{
				"orderStatus.type":    res.OrderStatus.Type,
				"orderStatus.message": res.OrderStatus.Message,
				"payment.status":      res.PaymentStatus,
				"payment.paid":        res.Paid,
				"payment.payable":     res.Payable,
				"updatedAt":           time.Now(),
			},
		},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (s *mongoOrderStore) FindByID(ctx context.Context, orderID, userID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": orderID, "userId": userID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *mongoOrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]models.Order, int64, error) {
	filter := bson.M{"userId": userID}
	if opts.Status != "" {
		filter["orderStatus.type"] = opts.Status
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (opts.Page - 1) * opts.Limit
	cursor, err := s.col.Find(ctx, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &opts.Limit,
	})
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
