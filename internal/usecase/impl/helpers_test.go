package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	"lapak/internal/infra/persistence/rtdb"
	"lapak/internal/infra/qrcode"
	"lapak/internal/infra/store"
	"lapak/internal/usecase"

	"github.com/stretchr/testify/require"
)

// countingStore wraps a DocumentStore and counts every call, so tests can
// assert that locally-resolved failures never reach the store.
type countingStore struct {
	inner service.DocumentStore
	calls atomic.Int64
}

func newCountingStore() *countingStore {
	return &countingStore{inner: store.NewMemoryStore()}
}

func (s *countingStore) Calls() int64 { return s.calls.Load() }

func (s *countingStore) Get(ctx context.Context, path string, v any) error {
	s.calls.Add(1)

	return s.inner.Get(ctx, path, v)
}

func (s *countingStore) Set(ctx context.Context, path string, v any) error {
	s.calls.Add(1)

	return s.inner.Set(ctx, path, v)
}

func (s *countingStore) Update(ctx context.Context, path string, fields map[string]any) error {
	s.calls.Add(1)

	return s.inner.Update(ctx, path, fields)
}

func (s *countingStore) Push(ctx context.Context, path string, v any) (string, error) {
	s.calls.Add(1)

	return s.inner.Push(ctx, path, v)
}

func (s *countingStore) Remove(ctx context.Context, path string) error {
	s.calls.Add(1)

	return s.inner.Remove(ctx, path)
}

func (s *countingStore) Watch(ctx context.Context, path string) (<-chan service.Snapshot, error) {
	s.calls.Add(1)

	return s.inner.Watch(ctx, path)
}

func (s *countingStore) Transaction(ctx context.Context, path string, fn func(service.TxnNode) (any, error)) error {
	s.calls.Add(1)

	return s.inner.Transaction(ctx, path, fn)
}

func (s *countingStore) ServerTimestamp() any { return s.inner.ServerTimestamp() }

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []*service.StoreEvent
}

func (p *capturePublisher) PublishStoreEvent(_ context.Context, event *service.StoreEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) Events() []*service.StoreEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.StoreEvent(nil), p.events...)
}

// stubImageStorage fakes blob uploads with deterministic URLs.
type stubImageStorage struct {
	mu      sync.Mutex
	uploads []string
	deletes []string
}

func (s *stubImageStorage) UploadImage(_ context.Context, keyPrefix, filename, _ string, body io.Reader) (string, error) {
	if body != nil {
		_, _ = io.Copy(io.Discard, body)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "https://img.test/" + keyPrefix + "/" + filename
	s.uploads = append(s.uploads, url)

	return url, nil
}

func (s *stubImageStorage) DeleteImage(_ context.Context, publicURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, publicURL)

	return nil
}

// stubReauth accepts exactly one password.
type stubReauth struct {
	password string
}

func (s *stubReauth) Reauthenticate(_ context.Context, _, password string) error {
	if password != s.password {
		return domainerrors.ErrReauthFailed
	}

	return nil
}

// fixture wires the services over one shared in-memory store, the same way
// the application container does.
type fixture struct {
	store     *countingStore
	users     repository.UserRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	carts     repository.CartRepository
	chats     repository.ChatRepository
	reports   repository.ReportRepository
	authz     usecase.Authorizer
	publisher *capturePublisher
	images    *stubImageStorage
	logger    *slog.Logger
}

func newFixture() *fixture {
	st := newCountingStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := rtdb.NewUserRepository(st)

	return &fixture{
		store:     st,
		users:     users,
		products:  rtdb.NewProductRepository(st),
		orders:    rtdb.NewOrderRepository(st),
		carts:     rtdb.NewCartRepository(st),
		chats:     rtdb.NewChatRepository(st),
		reports:   rtdb.NewReportRepository(st),
		authz:     NewAuthorizer(users, logger),
		publisher: &capturePublisher{},
		images:    &stubImageStorage{},
		logger:    logger,
	}
}

func (f *fixture) catalog() usecase.CatalogUsecase {
	return NewCatalogService(f.products, f.authz, f.images, f.logger)
}

func (f *fixture) orderSvc() usecase.OrderUsecase {
	return NewOrderService(f.orders, f.carts, f.authz, f.publisher, qrcode.NewQRCodeService(256, "M"), f.logger)
}

func (f *fixture) chatSvc(inlineFanOut bool) usecase.ChatUsecase {
	return NewChatService(f.chats, f.authz, f.publisher, inlineFanOut, f.logger)
}

func (f *fixture) accountSvc() usecase.AccountUsecase {
	return NewAccountService(f.users, f.reports, f.authz, f.logger)
}

func (f *fixture) profileSvc(reauth service.Reauthenticator) usecase.ProfileUsecase {
	return NewProfileService(f.users, reauth, f.images, f.logger)
}

func (f *fixture) cartSvc() usecase.CartUsecase {
	return NewCartService(f.carts, f.products, f.authz, f.logger)
}

func (f *fixture) seedUser(t *testing.T, id string, role entity.Role) *entity.User {
	t.Helper()
	user := &entity.User{
		ID:       id,
		Username: "user-" + id,
		Email:    id + "@example.com",
		Role:     role,
	}
	require.NoError(t, f.users.Create(context.Background(), user))

	return user
}

func (f *fixture) seedBlockedUser(t *testing.T, id string) *entity.User {
	t.Helper()
	user := f.seedUser(t, id, entity.RoleCustomer)
	require.NoError(t, f.users.SetBlocked(context.Background(), id, true))
	user.Blocked = true

	return user
}

func (f *fixture) seedProduct(t *testing.T, name, category string, price int64, stock int) *entity.Product {
	t.Helper()
	product := &entity.Product{Name: name, Price: price, Category: category, Stock: stock}
	id, err := f.products.Create(context.Background(), product)
	require.NoError(t, err)
	product.ID = id

	return product
}
