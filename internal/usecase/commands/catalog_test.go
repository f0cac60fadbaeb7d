//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-api/internal/domain/catalog"
	reqdto "grocery-api/internal/handler/dto/request"
	"grocery-api/internal/pkg/clock"
	"grocery-api/internal/usecase/commands"
	"grocery-api/internal/usecase/shared"
	"grocery-api/tests/common/fake"
)

var catalogNow = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

func newCatalogFixture() (commands.CatalogCommands, *fake.UnitOfWork) {
	uow := fake.NewUnitOfWork()
	return commands.NewCatalogCommands(uow, clock.NewMockClock(catalogNow)), uow
}

func offerRequest(status string) reqdto.OfferRequest {
	return reqdto.OfferRequest{
		Name: "Taco Night Kit",
		Items: []reqdto.OfferItemRequest{
			{ProductID: uuid.New(), Name: "Tortillas", BasePrice: 400, DiscountedPrice: 300},
			{ProductID: uuid.New(), Name: "Salsa", BasePrice: 350, DiscountedPrice: 300},
		},
		OriginalTotal:   750,
		DiscountedTotal: 600,
		Savings:         150,
		MinQuantity:     1,
		MaxQuantity:     10,
		Status:          status,
	}
}

func productRequest() reqdto.ProductRequest {
	return reqdto.ProductRequest{
		Name:        "Sourdough Loaf",
		Price:       650,
		Category:    "bakery",
		InStock:     true,
		MinQuantity: 1,
		MaxQuantity: 20,
		Active:      true,
	}
}

func jobsOfKind(uow *fake.UnitOfWork, kind string) []fake.EnqueuedJob {
	var out []fake.EnqueuedJob
	for _, j := range uow.Tx.OutboxRepo.Enqueued {
		if j.Kind == kind {
			out = append(out, j)
		}
	}
	return out
}

func TestCreateProduct(t *testing.T) {
	cmds, uow := newCatalogFixture()

	product, err := cmds.CreateProduct(context.Background(), productRequest())
	require.NoError(t, err)

	assert.Equal(t, catalogNow, product.CreatedAt)
	assert.Equal(t, catalogNow, product.UpdatedAt)
	assert.Contains(t, uow.Tx.ProductRepo.Products, product.ID)
	// Product writes never touch carts, so no invalidation job.
	assert.Empty(t, uow.Tx.OutboxRepo.Enqueued)
}

func TestCreateProduct_Invalid(t *testing.T) {
	cmds, _ := newCatalogFixture()

	req := productRequest()
	req.Name = ""
	_, err := cmds.CreateProduct(context.Background(), req)
	assert.ErrorIs(t, err, commands.ErrInvalidProduct)
}

func TestUpdateProduct_PreservesCreatedAt(t *testing.T) {
	cmds, uow := newCatalogFixture()

	created := catalogNow.Add(-48 * time.Hour)
	id := uuid.New()
	uow.Tx.ProductRepo.Products[id] = &catalog.Product{
		ID:          id,
		Name:        "Sourdough Loaf",
		PriceCents:  600,
		MinQuantity: 1,
		MaxQuantity: 20,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	product, err := cmds.UpdateProduct(context.Background(), id, productRequest())
	require.NoError(t, err)
	assert.Equal(t, created, product.CreatedAt)
	assert.Equal(t, catalogNow, product.UpdatedAt)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	cmds, _ := newCatalogFixture()

	_, err := cmds.UpdateProduct(context.Background(), uuid.New(), productRequest())
	assert.ErrorIs(t, err, commands.ErrProductNotFound)
}

func TestCreateOffer_Draft(t *testing.T) {
	cmds, uow := newCatalogFixture()

	offer, err := cmds.CreateOffer(context.Background(), offerRequest("draft"))
	require.NoError(t, err)

	assert.Nil(t, offer.PublishedAt)
	assert.Contains(t, uow.Tx.OfferRepo.Offers, offer.ID)

	// Every offer write enqueues invalidation, but a draft never broadcasts.
	assert.Len(t, jobsOfKind(uow, shared.JobKindCartInvalidation), 1)
	assert.Empty(t, jobsOfKind(uow, shared.JobKindOfferBroadcast))
}

func TestCreateOffer_ActiveBroadcasts(t *testing.T) {
	cmds, uow := newCatalogFixture()

	offer, err := cmds.CreateOffer(context.Background(), offerRequest("active"))
	require.NoError(t, err)

	require.NotNil(t, offer.PublishedAt)
	assert.Equal(t, catalogNow, *offer.PublishedAt)

	broadcasts := jobsOfKind(uow, shared.JobKindOfferBroadcast)
	require.Len(t, broadcasts, 1)

	var payload shared.OfferBroadcastPayload
	require.NoError(t, json.Unmarshal(broadcasts[0].Payload, &payload))
	assert.Equal(t, offer.ID, payload.OfferID)
	assert.Equal(t, "Taco Night Kit", payload.Name)
}

func TestUpdateOffer_ActivationSetsPublishedAt(t *testing.T) {
	cmds, uow := newCatalogFixture()

	draft, err := cmds.CreateOffer(context.Background(), offerRequest("draft"))
	require.NoError(t, err)

	activated, err := cmds.UpdateOffer(context.Background(), draft.ID, offerRequest("active"))
	require.NoError(t, err)

	require.NotNil(t, activated.PublishedAt)
	assert.Equal(t, draft.CreatedAt, activated.CreatedAt)
	assert.Len(t, jobsOfKind(uow, shared.JobKindOfferBroadcast), 1)
}

func TestUpdateOffer_AlreadyActiveDoesNotRebroadcast(t *testing.T) {
	cmds, uow := newCatalogFixture()

	active, err := cmds.CreateOffer(context.Background(), offerRequest("active"))
	require.NoError(t, err)
	publishedAt := *active.PublishedAt

	req := offerRequest("active")
	req.Description = "Now with extra salsa"
	updated, err := cmds.UpdateOffer(context.Background(), active.ID, req)
	require.NoError(t, err)

	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, publishedAt, *updated.PublishedAt)
	assert.Len(t, jobsOfKind(uow, shared.JobKindOfferBroadcast), 1)
	assert.Len(t, jobsOfKind(uow, shared.JobKindCartInvalidation), 2)
}

func TestUpdateOffer_InvalidationCarriesSnapshots(t *testing.T) {
	cmds, uow := newCatalogFixture()

	original, err := cmds.CreateOffer(context.Background(), offerRequest("active"))
	require.NoError(t, err)

	req := offerRequest("active")
	req.Items[0].DiscountedPrice = 250
	req.Items[1].DiscountedPrice = 300
	req.DiscountedTotal = 550
	req.Savings = 200
	_, err = cmds.UpdateOffer(context.Background(), original.ID, req)
	require.NoError(t, err)

	invalidations := jobsOfKind(uow, shared.JobKindCartInvalidation)
	require.Len(t, invalidations, 2)

	var payload shared.CartInvalidationPayload
	require.NoError(t, json.Unmarshal(invalidations[1].Payload, &payload))
	require.NotNil(t, payload.Previous)
	require.NotNil(t, payload.Current)
	assert.Equal(t, int64(600), payload.Previous.DiscountedTotalCents)
	assert.Equal(t, int64(550), payload.Current.DiscountedTotalCents)
}

func TestUpdateOffer_NotFound(t *testing.T) {
	cmds, _ := newCatalogFixture()

	_, err := cmds.UpdateOffer(context.Background(), uuid.New(), offerRequest("draft"))
	assert.ErrorIs(t, err, commands.ErrOfferNotFound)
}

func TestCreateOffer_Invalid(t *testing.T) {
	cmds, _ := newCatalogFixture()

	req := offerRequest("draft")
	req.Savings = 999
	_, err := cmds.CreateOffer(context.Background(), req)
	assert.ErrorIs(t, err, commands.ErrInvalidOffer)
}

func TestDeleteOffer(t *testing.T) {
	cmds, uow := newCatalogFixture()

	offer, err := cmds.CreateOffer(context.Background(), offerRequest("active"))
	require.NoError(t, err)

	require.NoError(t, cmds.DeleteOffer(context.Background(), offer.ID))
	assert.NotContains(t, uow.Tx.OfferRepo.Offers, offer.ID)

	invalidations := jobsOfKind(uow, shared.JobKindCartInvalidation)
	require.Len(t, invalidations, 2)

	var payload shared.CartInvalidationPayload
	require.NoError(t, json.Unmarshal(invalidations[1].Payload, &payload))
	require.NotNil(t, payload.Previous)
	assert.Nil(t, payload.Current)
}

func TestDeleteOffer_NotFound(t *testing.T) {
	cmds, _ := newCatalogFixture()

	err := cmds.DeleteOffer(context.Background(), uuid.New())
	assert.ErrorIs(t, err, commands.ErrOfferNotFound)
}
