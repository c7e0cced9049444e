package rtdb

import (
	"context"
	"sort"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	"lapak/internal/infra/persistence/model"

	"github.com/pkg/errors"
)

// orderRepository implements repository.OrderRepository over the document store.
type orderRepository struct {
	store service.DocumentStore
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(store service.DocumentStore) repository.OrderRepository {
	return &orderRepository{store: store}
}

// FindByID retrieves a single order.
func (repo *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var doc model.OrderDoc
	if err := repo.store.Get(ctx, orderPath(id), &doc); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to find order by id")
	}

	return toOrderDomain(id, &doc), nil
}

// ListByCustomer retrieves the orders placed by a customer, oldest first.
func (repo *orderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error) {
	all, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]*entity.Order, 0, len(all))
	for _, order := range all {
		if order.Customer.UserID == customerID {
			orders = append(orders, order)
		}
	}

	return orders, nil
}

// List retrieves all orders ordered by key, oldest first.
func (repo *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	var docs map[string]model.OrderDoc
	if err := repo.store.Get(ctx, ordersPath, &docs); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, nil
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(docs))
	for id, doc := range docs {
		orders = append(orders, toOrderDomain(id, &doc))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

	return orders, nil
}

// Create persists a new order under a server-generated key and returns the key.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) (string, error) {
	doc := fromOrderDomain(order)
	doc.CreatedAt = repo.store.ServerTimestamp()

	key, err := repo.store.Push(ctx, ordersPath, doc)
	if err != nil {
		return "", domainerrors.NewStoreExecuteError(err, "failed to create order")
	}

	return key, nil
}

// UpdateStatus moves the order from expected to target inside a store
// transaction. The write is conditional on the current status still matching
// expected, so two racing workflows cannot both land the same transition. The
// handler slot is claimed on the first fulfillment write and never overwritten.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id string, expected, target entity.OrderStatus, handlerID string) error {
	var conflict error
	err := repo.store.Transaction(ctx, orderPath(id), func(node service.TxnNode) (any, error) {
		var current map[string]any
		if err := node.Unmarshal(&current); err != nil {
			return nil, err
		}
		if current == nil {
			conflict = repository.ErrOrderNotFound

			return nil, conflict
		}

		status, _ := current["status"].(string)
		if status != expected.String() {
			conflict = repository.ErrStatusChanged

			return nil, conflict
		}

		current["status"] = target.String()
		if handler, _ := current["handlerId"].(string); handler == "" && handlerID != "" {
			current["handlerId"] = handlerID
		}

		return current, nil
	})

	if conflict != nil {
		return conflict
	}
	if err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to update order status")
	}

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(id string, doc *model.OrderDoc) *entity.Order {
	items := make(map[string]entity.OrderItem, len(doc.Items))
	for productID, item := range doc.Items {
		items[productID] = entity.OrderItem{
			ProductID: productID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		}
	}

	return &entity.Order{
		ID:         id,
		Customer:   toSnapshotDomain(doc.Customer),
		Items:      items,
		TotalPrice: doc.TotalPrice,
		Status:     entity.OrderStatus(doc.Status),
		HandlerID:  doc.HandlerID,
		CreatedAt:  model.TimeOf(doc.CreatedAt),
	}
}

func fromOrderDomain(order *entity.Order) *model.OrderDoc {
	items := make(map[string]model.OrderItemDoc, len(order.Items))
	for productID, item := range order.Items {
		items[productID] = model.OrderItemDoc{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal,
		}
	}

	return &model.OrderDoc{
		Customer:   fromSnapshotDomain(order.Customer),
		Items:      items,
		TotalPrice: order.TotalPrice,
		Status:     order.Status.String(),
		HandlerID:  order.HandlerID,
	}
}
