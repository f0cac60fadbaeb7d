//go:build unit

// Package fake provides in-memory implementations of the persistence
// ports for unit tests. State lives in exported maps so tests can seed
// and inspect it directly; error fields force failure paths.
package fake

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/domain/catalog"
	"grocery-api/internal/domain/order"
	"grocery-api/internal/domain/user"
	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
	"grocery-api/internal/infra/repository"
	"grocery-api/internal/usecase/shared"
)

// UnitOfWork runs callbacks inline against a single in-memory Tx. There
// is no rollback; a test that needs pristine state builds a new one.
type UnitOfWork struct {
	Tx *Tx

	WithinErr error
	WithDBErr error
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{Tx: NewTx()}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.WithinErr != nil {
		return u.WithinErr
	}
	return fn(ctx, u.Tx)
}

func (u *UnitOfWork) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	if u.WithDBErr != nil {
		return u.WithDBErr
	}
	return fn(ctx, nil)
}

type Tx struct {
	OrderRepo   *OrderRepo
	CartRepo    *CartRepo
	OfferRepo   *OfferRepo
	ProductRepo *ProductRepo
	UserRepo    *UserRepo
	CounterRepo *CounterRepo
	OutboxRepo  *OutboxRepo
}

func NewTx() *Tx {
	return &Tx{
		OrderRepo:   NewOrderRepo(),
		CartRepo:    NewCartRepo(),
		OfferRepo:   NewOfferRepo(),
		ProductRepo: NewProductRepo(),
		UserRepo:    NewUserRepo(),
		CounterRepo: NewCounterRepo(),
		OutboxRepo:  NewOutboxRepo(),
	}
}

func (t *Tx) Orders() shared.OrderRepository     { return t.OrderRepo }
func (t *Tx) Carts() shared.CartRepository       { return t.CartRepo }
func (t *Tx) Offers() shared.OfferRepository     { return t.OfferRepo }
func (t *Tx) Products() shared.ProductRepository { return t.ProductRepo }
func (t *Tx) Users() shared.UserRepository       { return t.UserRepo }
func (t *Tx) Counters() shared.CounterRepository { return t.CounterRepo }
func (t *Tx) Outbox() shared.OutboxRepository    { return t.OutboxRepo }
func (t *Tx) DB() db.DBTX                        { return nil }

type OrderRepo struct {
	Orders map[uuid.UUID]*order.Order

	CreateErr       error
	UpdateStatusErr error

	InvoiceURLs     map[uuid.UUID]string
	InvoiceFailures map[uuid.UUID]string
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{
		Orders:          make(map[uuid.UUID]*order.Order),
		InvoiceURLs:     make(map[uuid.UUID]string),
		InvoiceFailures: make(map[uuid.UUID]string),
	}
}

func (r *OrderRepo) Create(_ context.Context, _ db.DBTX, o *order.Order) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.Orders[o.ID] = o
	return nil
}

func (r *OrderRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*order.Order, error) {
	o, ok := r.Orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return o, nil
}

func (r *OrderRepo) ListByUser(_ context.Context, _ db.DBTX, userID uuid.UUID) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.Orders {
		if o.Customer.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, _ db.DBTX, o *order.Order) error {
	if r.UpdateStatusErr != nil {
		return r.UpdateStatusErr
	}
	if _, ok := r.Orders[o.ID]; !ok {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	r.Orders[o.ID] = o
	return nil
}

func (r *OrderRepo) SetInvoiceURL(_ context.Context, _ db.DBTX, id uuid.UUID, url string) error {
	r.InvoiceURLs[id] = url
	if o, ok := r.Orders[id]; ok {
		o.InvoiceURL = &url
	}
	return nil
}

func (r *OrderRepo) SetInvoiceFailure(_ context.Context, _ db.DBTX, id uuid.UUID, errMsg string) error {
	r.InvoiceFailures[id] = errMsg
	return nil
}

type CartRepo struct {
	Carts map[uuid.UUID]*cart.Cart

	SaveErr error

	Cleared   []uuid.UUID
	FlagCalls []FlagCall
}

type FlagCall struct {
	UserIDs []uuid.UUID
	OfferID uuid.UUID
}

func NewCartRepo() *CartRepo {
	return &CartRepo{Carts: make(map[uuid.UUID]*cart.Cart)}
}

func (r *CartRepo) FindByUserID(_ context.Context, _ db.DBTX, userID uuid.UUID) (*cart.Cart, error) {
	c, ok := r.Carts[userID]
	if !ok {
		return nil, infra.WrapRepoErr("cart not found", nil, infra.KindNotFound)
	}
	return c, nil
}

func (r *CartRepo) Save(_ context.Context, _ db.DBTX, c *cart.Cart) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Carts[c.UserID] = c
	return nil
}

func (r *CartRepo) Clear(_ context.Context, _ db.DBTX, userID uuid.UUID) error {
	delete(r.Carts, userID)
	r.Cleared = append(r.Cleared, userID)
	return nil
}

func (r *CartRepo) ScanAll(_ context.Context, _ db.DBTX) ([]repository.CartRef, error) {
	refs := make([]repository.CartRef, 0, len(r.Carts))
	for _, c := range r.Carts {
		refs = append(refs, repository.CartRef{UserID: c.UserID, OfferLines: c.OfferLines})
	}
	return refs, nil
}

func (r *CartRepo) FlagInvalid(_ context.Context, _ db.DBTX, userIDs []uuid.UUID, offerID uuid.UUID) error {
	r.FlagCalls = append(r.FlagCalls, FlagCall{UserIDs: userIDs, OfferID: offerID})
	for _, id := range userIDs {
		if c, ok := r.Carts[id]; ok {
			c.FlagInvalidOffer(offerID)
		}
	}
	return nil
}

type OfferRepo struct {
	Offers map[uuid.UUID]*catalog.Offer

	SaveErr error
	Deleted []uuid.UUID
}

func NewOfferRepo() *OfferRepo {
	return &OfferRepo{Offers: make(map[uuid.UUID]*catalog.Offer)}
}

func (r *OfferRepo) Save(_ context.Context, _ db.DBTX, o *catalog.Offer) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Offers[o.ID] = o
	return nil
}

func (r *OfferRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.Offers[id]; !ok {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	delete(r.Offers, id)
	r.Deleted = append(r.Deleted, id)
	return nil
}

func (r *OfferRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*catalog.Offer, error) {
	o, ok := r.Offers[id]
	if !ok {
		return nil, infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return o, nil
}

func (r *OfferRepo) FindByIDs(_ context.Context, _ db.DBTX, ids []uuid.UUID) (map[uuid.UUID]*catalog.Offer, error) {
	out := make(map[uuid.UUID]*catalog.Offer)
	for _, id := range ids {
		if o, ok := r.Offers[id]; ok {
			out[id] = o
		}
	}
	return out, nil
}

func (r *OfferRepo) ListActive(_ context.Context, _ db.DBTX) ([]*catalog.Offer, error) {
	var out []*catalog.Offer
	for _, o := range r.Offers {
		if o.IsActive() {
			out = append(out, o)
		}
	}
	return out, nil
}

type ProductRepo struct {
	Products map[uuid.UUID]*catalog.Product

	SaveErr error
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{Products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *ProductRepo) Save(_ context.Context, _ db.DBTX, p *catalog.Product) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Products[p.ID] = p
	return nil
}

func (r *ProductRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.Products[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return p, nil
}

func (r *ProductRepo) FindByIDs(_ context.Context, _ db.DBTX, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	out := make(map[uuid.UUID]*catalog.Product)
	for _, id := range ids {
		if p, ok := r.Products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *ProductRepo) ListActive(_ context.Context, _ db.DBTX) ([]*catalog.Product, error) {
	var out []*catalog.Product
	for _, p := range r.Products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

type UserRepo struct {
	Users map[uuid.UUID]*user.User

	CreateErr error
}

func NewUserRepo() *UserRepo {
	return &UserRepo{Users: make(map[uuid.UUID]*user.User)}
}

func (r *UserRepo) Create(_ context.Context, _ db.DBTX, u *user.User) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	for _, existing := range r.Users {
		if u.Email != "" && existing.Email == u.Email {
			return infra.WrapRepoErr("email already used", nil, infra.KindDuplicateKey)
		}
	}
	r.Users[u.ID] = u
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*user.User, error) {
	u, ok := r.Users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func (r *UserRepo) FindByPhone(_ context.Context, _ db.DBTX, phone string) (*user.User, error) {
	for _, u := range r.Users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (r *UserRepo) FindByEmail(_ context.Context, _ db.DBTX, email string) (*user.User, error) {
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (r *UserRepo) UpdatePasswordHash(_ context.Context, _ db.DBTX, id uuid.UUID, passwordHash string) error {
	u, ok := r.Users[id]
	if !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *UserRepo) AddDeviceToken(_ context.Context, _ db.DBTX, id uuid.UUID, token string) error {
	u, ok := r.Users[id]
	if !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	if !slices.Contains(u.DeviceTokens, token) {
		u.DeviceTokens = append(u.DeviceTokens, token)
	}
	return nil
}

type CounterRepo struct {
	Counts map[string]int

	NextErr error
}

func NewCounterRepo() *CounterRepo {
	return &CounterRepo{Counts: make(map[string]int)}
}

func (r *CounterRepo) Next(_ context.Context, _ db.DBTX, key string) (int, error) {
	if r.NextErr != nil {
		return 0, r.NextErr
	}
	r.Counts[key]++
	return r.Counts[key], nil
}

type EnqueuedJob struct {
	Kind    string
	Payload []byte
	RunAt   time.Time
}

type OutboxRepo struct {
	Enqueued []EnqueuedJob

	EnqueueErr error

	Completed    []int64
	Rescheduled  map[int64]time.Time
	Abandoned    map[int64]string
	ClaimedBatch []repository.Job
}

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{
		Rescheduled: make(map[int64]time.Time),
		Abandoned:   make(map[int64]string),
	}
}

func (r *OutboxRepo) Enqueue(_ context.Context, _ db.DBTX, kind string, payload any, runAt time.Time) error {
	if r.EnqueueErr != nil {
		return r.EnqueueErr
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	r.Enqueued = append(r.Enqueued, EnqueuedJob{Kind: kind, Payload: body, RunAt: runAt})
	return nil
}

func (r *OutboxRepo) ClaimDue(_ context.Context, _ db.DBTX, limit int) ([]repository.Job, error) {
	if len(r.ClaimedBatch) > limit {
		return r.ClaimedBatch[:limit], nil
	}
	return r.ClaimedBatch, nil
}

func (r *OutboxRepo) MarkCompleted(_ context.Context, _ db.DBTX, id int64) error {
	r.Completed = append(r.Completed, id)
	return nil
}

func (r *OutboxRepo) Reschedule(_ context.Context, _ db.DBTX, id int64, runAt time.Time, _ string) error {
	r.Rescheduled[id] = runAt
	return nil
}

func (r *OutboxRepo) Abandon(_ context.Context, _ db.DBTX, id int64, lastError string) error {
	r.Abandoned[id] = lastError
	return nil
}
