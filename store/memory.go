package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dhimanroyit/ssl-react-native-problem/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ OrderStore   = (*MemoryOrderStore)(nil)
	_ ProductStore = (*MemoryProductStore)(nil)
)

// MemoryOrderStore is an in-memory OrderStore used in tests and local
// development without a running MongoDB.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]*models.Order
	byTran map[string]primitive.ObjectID
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{
		orders: make(map[primitive.ObjectID]*models.Order),
		byTran: make(map[string]primitive.ObjectID),
	}
}

func (s *MemoryOrderStore) Insert(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byTran[order.Payment.TransactionID]; exists {
		return errors.New("duplicate transaction id")
	}
	clone := *order
	s.orders[order.ID] = &clone
	s.byTran[order.Payment.TransactionID] = order.ID
	return nil
}

func (s *MemoryOrderStore) FindByTransactionID(ctx context.Context, tranID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byTran[tranID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	clone := *s.orders[id]
	return &clone, nil
}

func (s *MemoryOrderStore) Resolve(ctx context.Context, tranID string, res Resolution) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byTran[tranID]
	if !ok {
		return false, nil
	}
	order := s.orders[id]
	if order.OrderStatus.Type != models.OrderPending {
		return false, nil
	}
	order.OrderStatus = res.OrderStatus
	order.Payment.Status = res.PaymentStatus
	order.Payment.Paid = res.Paid
	order.Payment.Payable = res.Payable
	order.UpdatedAt = time.Now()
	return true, nil
}

func (s *MemoryOrderStore) FindByID(ctx context.Context, orderID, userID primitive.ObjectID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func (s *MemoryOrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]models.Order, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Order, 0)
	for _, order := range s.orders {
		if order.UserID != userID {
			continue
		}
		if opts.Status != "" && order.OrderStatus.Type != opts.Status {
			continue
		}
		matched = append(matched, *order)
	}

	total := int64(len(matched))
	start := (opts.Page - 1) * opts.Limit
	if start >= total {
		return []models.Order{}, total, nil
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// MemoryProductStore is an in-memory ProductStore counterpart.
type MemoryProductStore struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{products: make(map[primitive.ObjectID]models.Product)}
}

func (s *MemoryProductStore) Add(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
}

func (s *MemoryProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (s *MemoryProductStore) List(ctx context.Context, page, limit int64) ([]models.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		all = append(all, product)
	}

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= total {
		return []models.Product{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}
