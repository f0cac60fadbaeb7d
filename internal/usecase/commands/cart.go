package commands

import (
	"context"

	"github.com/google/uuid"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/domain/catalog"
	reqdto "grocery-api/internal/handler/dto/request"
	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
	"grocery-api/internal/pkg/clock"
	"grocery-api/internal/pkg/errs"
	"grocery-api/internal/usecase/shared"
)

var (
	ErrOfferNotFound       = errs.New("offer not found")
	ErrProductNotFound     = errs.New("product not found")
	ErrOfferNotOrderable   = errs.New("offer is not currently orderable")
	ErrProductNotOrderable = errs.New("product is not currently orderable")
	ErrCartLookupFailed    = errs.New("failed to load cart")
	ErrCartWriteFailed     = errs.New("failed to persist cart")
)

type CartCommands interface {
	ValidateCart(ctx context.Context, userID uuid.UUID, req reqdto.ValidateCartRequest) (*cart.ValidationResult, error)
	PutOfferLine(ctx context.Context, userID uuid.UUID, req reqdto.PutOfferLineRequest) (*cart.Cart, error)
	PutProductLine(ctx context.Context, userID uuid.UUID, req reqdto.PutProductLineRequest) (*cart.Cart, error)
	RemoveOfferLine(ctx context.Context, userID, offerID uuid.UUID) (*cart.Cart, error)
	RemoveProductLine(ctx context.Context, userID, productID uuid.UUID) (*cart.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartCommandsImpl struct {
	uow      shared.UnitOfWork
	carts    shared.CartRepository
	offers   shared.OfferRepository
	products shared.ProductRepository
	clock    clock.Clock
}

func NewCartCommands(
	uow shared.UnitOfWork,
	carts shared.CartRepository,
	offers shared.OfferRepository,
	products shared.ProductRepository,
	clock clock.Clock,
) CartCommands {
	return &cartCommandsImpl{
		uow:      uow,
		carts:    carts,
		offers:   offers,
		products: products,
		clock:    clock,
	}
}

// ValidateCart checks the submitted items against the live catalog.
// Quantities come from the request; price snapshots come from the stored
// cart so that catalog price drift since the item was added is detected.
// Items not present in the stored cart are snapshotted fresh.
func (c *cartCommandsImpl) ValidateCart(ctx context.Context, userID uuid.UUID, req reqdto.ValidateCartRequest) (*cart.ValidationResult, error) {
	var result cart.ValidationResult

	err := c.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		stored, err := c.carts.FindByUserID(ctx, dbtx, userID)
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrCartLookupFailed)
			}
			stored = cart.NewCart(userID)
		}

		offerIDs := make([]uuid.UUID, len(req.Offers))
		for i, ref := range req.Offers {
			offerIDs[i] = ref.OfferID
		}
		productIDs := make([]uuid.UUID, len(req.Products))
		for i, ref := range req.Products {
			productIDs[i] = ref.ProductID
		}

		liveOffers, err := c.offers.FindByIDs(ctx, dbtx, offerIDs)
		if err != nil {
			return errs.Mark(err, ErrCartLookupFailed)
		}
		liveProducts, err := c.products.FindByIDs(ctx, dbtx, productIDs)
		if err != nil {
			return errs.Mark(err, ErrCartLookupFailed)
		}

		working := buildWorkingCart(userID, req, stored, liveOffers, liveProducts)
		result = cart.Validate(working, cart.Catalog{Offers: liveOffers, Products: liveProducts}, c.clock.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// buildWorkingCart assembles the lines to validate: stored snapshots where
// they exist (rescaled to the requested quantity), fresh snapshots otherwise.
func buildWorkingCart(
	userID uuid.UUID,
	req reqdto.ValidateCartRequest,
	stored *cart.Cart,
	liveOffers map[uuid.UUID]*catalog.Offer,
	liveProducts map[uuid.UUID]*catalog.Product,
) *cart.Cart {
	working := cart.NewCart(userID)

	for _, ref := range req.Offers {
		if line, ok := storedOfferLine(stored, ref.OfferID); ok {
			unit := line.UnitPriceCents()
			origUnit := int64(0)
			if line.Quantity > 0 {
				origUnit = line.OriginalTotalCents / int64(line.Quantity)
			}
			line.Quantity = ref.Quantity
			line.DiscountedTotalCents = unit * int64(ref.Quantity)
			line.OriginalTotalCents = origUnit * int64(ref.Quantity)
			working.PutOfferLine(line)
			continue
		}
		line := cart.OfferLine{OfferID: ref.OfferID, Quantity: ref.Quantity}
		if offer, ok := liveOffers[ref.OfferID]; ok {
			line.Name = offer.Name
			line.Items = offer.Items
			line.DiscountedTotalCents = offer.DiscountedTotalCents * int64(ref.Quantity)
			line.OriginalTotalCents = offer.OriginalTotalCents * int64(ref.Quantity)
		}
		working.PutOfferLine(line)
	}

	for _, ref := range req.Products {
		if line, ok := storedProductLine(stored, ref.ProductID); ok {
			line.Quantity = ref.Quantity
			line.TotalCents = line.UnitPriceCents * int64(ref.Quantity)
			working.PutProductLine(line)
			continue
		}
		line := cart.ProductLine{ProductID: ref.ProductID, Quantity: ref.Quantity}
		if product, ok := liveProducts[ref.ProductID]; ok {
			line.Name = product.Name
			line.UnitPriceCents = product.PriceCents
			line.TotalCents = product.PriceCents * int64(ref.Quantity)
		}
		working.PutProductLine(line)
	}

	return working
}

func storedOfferLine(c *cart.Cart, offerID uuid.UUID) (cart.OfferLine, bool) {
	for _, l := range c.OfferLines {
		if l.OfferID == offerID {
			return l, true
		}
	}
	return cart.OfferLine{}, false
}

func storedProductLine(c *cart.Cart, productID uuid.UUID) (cart.ProductLine, bool) {
	for _, l := range c.ProductLines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return cart.ProductLine{}, false
}

func (c *cartCommandsImpl) PutOfferLine(ctx context.Context, userID uuid.UUID, req reqdto.PutOfferLineRequest) (*cart.Cart, error) {
	var updated *cart.Cart
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		offer, err := tx.Offers().FindByID(ctx, tx.DB(), req.OfferID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOfferNotFound
			}
			return errs.Mark(err, ErrCartLookupFailed)
		}
		if !offer.IsActive() || !offer.WithinValidityWindow(now) {
			return ErrOfferNotOrderable
		}
		if req.Quantity < offer.MinQuantity || req.Quantity > offer.MaxQuantity {
			return ErrOfferNotOrderable
		}

		ct, err := c.loadOrNewCart(ctx, tx, userID)
		if err != nil {
			return err
		}
		ct.PutOfferLine(cart.OfferLine{
			OfferID:              offer.ID,
			Name:                 offer.Name,
			Quantity:             req.Quantity,
			DiscountedTotalCents: offer.DiscountedTotalCents * int64(req.Quantity),
			OriginalTotalCents:   offer.OriginalTotalCents * int64(req.Quantity),
			Items:                offer.Items,
		})
		ct.UpdatedAt = now

		if err := tx.Carts().Save(ctx, tx.DB(), ct); err != nil {
			return errs.Mark(err, ErrCartWriteFailed)
		}
		updated = ct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *cartCommandsImpl) PutProductLine(ctx context.Context, userID uuid.UUID, req reqdto.PutProductLineRequest) (*cart.Cart, error) {
	var updated *cart.Cart
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		product, err := tx.Products().FindByID(ctx, tx.DB(), req.ProductID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return errs.Mark(err, ErrCartLookupFailed)
		}
		if !product.Purchasable() {
			return ErrProductNotOrderable
		}
		if req.Quantity < product.MinQuantity || req.Quantity > product.MaxQuantity {
			return ErrProductNotOrderable
		}

		ct, err := c.loadOrNewCart(ctx, tx, userID)
		if err != nil {
			return err
		}
		ct.PutProductLine(cart.ProductLine{
			ProductID:      product.ID,
			Name:           product.Name,
			Quantity:       req.Quantity,
			UnitPriceCents: product.PriceCents,
			TotalCents:     product.PriceCents * int64(req.Quantity),
		})
		ct.UpdatedAt = now

		if err := tx.Carts().Save(ctx, tx.DB(), ct); err != nil {
			return errs.Mark(err, ErrCartWriteFailed)
		}
		updated = ct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *cartCommandsImpl) RemoveOfferLine(ctx context.Context, userID, offerID uuid.UUID) (*cart.Cart, error) {
	return c.mutate(ctx, userID, func(ct *cart.Cart) {
		ct.RemoveOfferLine(offerID)
	})
}

func (c *cartCommandsImpl) RemoveProductLine(ctx context.Context, userID, productID uuid.UUID) (*cart.Cart, error) {
	return c.mutate(ctx, userID, func(ct *cart.Cart) {
		ct.RemoveProductLine(productID)
	})
}

func (c *cartCommandsImpl) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Carts().Clear(ctx, tx.DB(), userID); err != nil {
			return errs.Mark(err, ErrCartWriteFailed)
		}
		return nil
	})
}

func (c *cartCommandsImpl) mutate(ctx context.Context, userID uuid.UUID, fn func(*cart.Cart)) (*cart.Cart, error) {
	var updated *cart.Cart

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ct, err := c.loadOrNewCart(ctx, tx, userID)
		if err != nil {
			return err
		}
		fn(ct)
		ct.UpdatedAt = c.clock.Now()

		if err := tx.Carts().Save(ctx, tx.DB(), ct); err != nil {
			return errs.Mark(err, ErrCartWriteFailed)
		}
		updated = ct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *cartCommandsImpl) loadOrNewCart(ctx context.Context, tx shared.Tx, userID uuid.UUID) (*cart.Cart, error) {
	ct, err := tx.Carts().FindByUserID(ctx, tx.DB(), userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return cart.NewCart(userID), nil
		}
		return nil, errs.Mark(err, ErrCartLookupFailed)
	}
	return ct, nil
}
