package commands

import (
	"context"

	"github.com/google/uuid"

	"grocery-api/internal/domain/catalog"
	reqdto "grocery-api/internal/handler/dto/request"
	"grocery-api/internal/infra"
	"grocery-api/internal/pkg/clock"
	"grocery-api/internal/pkg/errs"
	"grocery-api/internal/usecase/shared"
)

var (
	ErrInvalidProduct     = errs.New("invalid product")
	ErrInvalidOffer       = errs.New("invalid offer")
	ErrCatalogWriteFailed = errs.New("failed to persist catalog entry")
)

type CatalogCommands interface {
	CreateProduct(ctx context.Context, req reqdto.ProductRequest) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req reqdto.ProductRequest) (*catalog.Product, error)
	CreateOffer(ctx context.Context, req reqdto.OfferRequest) (*catalog.Offer, error)
	UpdateOffer(ctx context.Context, id uuid.UUID, req reqdto.OfferRequest) (*catalog.Offer, error)
	DeleteOffer(ctx context.Context, id uuid.UUID) error
}

type catalogCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCatalogCommands(uow shared.UnitOfWork, clock clock.Clock) CatalogCommands {
	return &catalogCommandsImpl{uow: uow, clock: clock}
}

func (c *catalogCommandsImpl) CreateProduct(ctx context.Context, req reqdto.ProductRequest) (*catalog.Product, error) {
	return c.saveProduct(ctx, uuid.New(), req, false)
}

func (c *catalogCommandsImpl) UpdateProduct(ctx context.Context, id uuid.UUID, req reqdto.ProductRequest) (*catalog.Product, error) {
	return c.saveProduct(ctx, id, req, true)
}

func (c *catalogCommandsImpl) saveProduct(ctx context.Context, id uuid.UUID, req reqdto.ProductRequest, mustExist bool) (*catalog.Product, error) {
	now := c.clock.Now()
	product := req.ToDomain(id)
	if err := product.Validate(); err != nil {
		return nil, errs.Mark(err, ErrInvalidProduct)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if mustExist {
			existing, err := tx.Products().FindByID(ctx, tx.DB(), id)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return ErrProductNotFound
				}
				return errs.Mark(err, ErrCatalogWriteFailed)
			}
			product.CreatedAt = existing.CreatedAt
		} else {
			product.CreatedAt = now
		}
		product.UpdatedAt = now

		if err := tx.Products().Save(ctx, tx.DB(), product); err != nil {
			return errs.Mark(err, ErrCatalogWriteFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (c *catalogCommandsImpl) CreateOffer(ctx context.Context, req reqdto.OfferRequest) (*catalog.Offer, error) {
	return c.saveOffer(ctx, uuid.New(), req, false)
}

func (c *catalogCommandsImpl) UpdateOffer(ctx context.Context, id uuid.UUID, req reqdto.OfferRequest) (*catalog.Offer, error) {
	return c.saveOffer(ctx, id, req, true)
}

// saveOffer writes the offer and, in the same transaction, enqueues the
// cart invalidation job carrying the before/after snapshots. A transition
// into active additionally enqueues the storefront broadcast.
func (c *catalogCommandsImpl) saveOffer(ctx context.Context, id uuid.UUID, req reqdto.OfferRequest, mustExist bool) (*catalog.Offer, error) {
	now := c.clock.Now()
	offer := req.ToDomain(id)
	if err := offer.Validate(); err != nil {
		return nil, errs.Mark(err, ErrInvalidOffer)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		previous, err := tx.Offers().FindByID(ctx, tx.DB(), id)
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrCatalogWriteFailed)
			}
			if mustExist {
				return ErrOfferNotFound
			}
			previous = nil
		}

		if previous != nil {
			offer.CreatedAt = previous.CreatedAt
			offer.PublishedAt = previous.PublishedAt
		} else {
			offer.CreatedAt = now
		}
		offer.UpdatedAt = now

		activated := offer.IsActive() && (previous == nil || !previous.IsActive())
		if activated {
			published := now
			offer.PublishedAt = &published
		}

		if err := tx.Offers().Save(ctx, tx.DB(), offer); err != nil {
			return errs.Mark(err, ErrCatalogWriteFailed)
		}

		invalidation := shared.CartInvalidationPayload{Previous: previous, Current: offer}
		if err := tx.Outbox().Enqueue(ctx, tx.DB(), shared.JobKindCartInvalidation, invalidation, now); err != nil {
			return errs.Mark(err, ErrCatalogWriteFailed)
		}

		if activated {
			broadcast := shared.OfferBroadcastPayload{OfferID: offer.ID, Name: offer.Name}
			if err := tx.Outbox().Enqueue(ctx, tx.DB(), shared.JobKindOfferBroadcast, broadcast, now); err != nil {
				return errs.Mark(err, ErrCatalogWriteFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return offer, nil
}

func (c *catalogCommandsImpl) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		previous, err := tx.Offers().FindByID(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOfferNotFound
			}
			return errs.Mark(err, ErrCatalogWriteFailed)
		}

		if err := tx.Offers().Delete(ctx, tx.DB(), id); err != nil {
			return errs.Mark(err, ErrCatalogWriteFailed)
		}

		invalidation := shared.CartInvalidationPayload{Previous: previous, Current: nil}
		return errs.Wrap(
			tx.Outbox().Enqueue(ctx, tx.DB(), shared.JobKindCartInvalidation, invalidation, now),
			"failed to enqueue invalidation for deleted offer",
		)
	})
}
