package shared

import (
	"context"
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/domain/catalog"
	"grocery-api/internal/domain/order"
	"grocery-api/internal/domain/user"
	"grocery-api/internal/infra/db"
	"grocery-api/internal/infra/repository"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Orders() OrderRepository
	Carts() CartRepository
	Offers() OfferRepository
	Products() ProductRepository
	Users() UserRepository
	Counters() CounterRepository
	Outbox() OutboxRepository
	DB() db.DBTX
}

type OrderRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, o *order.Order) error
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*order.Order, error)
	ListByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) ([]*order.Order, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, o *order.Order) error
	SetInvoiceURL(ctx context.Context, dbtx db.DBTX, id uuid.UUID, url string) error
	SetInvoiceFailure(ctx context.Context, dbtx db.DBTX, id uuid.UUID, errMsg string) error
}

type CartRepository interface {
	FindByUserID(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (*cart.Cart, error)
	Save(ctx context.Context, dbtx db.DBTX, c *cart.Cart) error
	Clear(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
	ScanAll(ctx context.Context, dbtx db.DBTX) ([]repository.CartRef, error)
	FlagInvalid(ctx context.Context, dbtx db.DBTX, userIDs []uuid.UUID, offerID uuid.UUID) error
}

type OfferRepository interface {
	Save(ctx context.Context, dbtx db.DBTX, o *catalog.Offer) error
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*catalog.Offer, error)
	FindByIDs(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]*catalog.Offer, error)
	ListActive(ctx context.Context, dbtx db.DBTX) ([]*catalog.Offer, error)
}

type ProductRepository interface {
	Save(ctx context.Context, dbtx db.DBTX, p *catalog.Product) error
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*catalog.Product, error)
	FindByIDs(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error)
	ListActive(ctx context.Context, dbtx db.DBTX) ([]*catalog.Product, error)
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, u *user.User) error
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*user.User, error)
	FindByPhone(ctx context.Context, dbtx db.DBTX, phone string) (*user.User, error)
	FindByEmail(ctx context.Context, dbtx db.DBTX, email string) (*user.User, error)
	UpdatePasswordHash(ctx context.Context, dbtx db.DBTX, id uuid.UUID, passwordHash string) error
	AddDeviceToken(ctx context.Context, dbtx db.DBTX, id uuid.UUID, token string) error
}

type CounterRepository interface {
	Next(ctx context.Context, dbtx db.DBTX, key string) (int, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, dbtx db.DBTX, kind string, payload any, runAt time.Time) error
	ClaimDue(ctx context.Context, dbtx db.DBTX, limit int) ([]repository.Job, error)
	MarkCompleted(ctx context.Context, dbtx db.DBTX, id int64) error
	Reschedule(ctx context.Context, dbtx db.DBTX, id int64, runAt time.Time, lastError string) error
	Abandon(ctx context.Context, dbtx db.DBTX, id int64, lastError string) error
}
