package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/gongu"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// PurchaseService drives campaign hosting, joining, and payment. All quantity
// and price rules live in the gongu package; this service sequences them
// against the upstream API and the session.
type PurchaseService struct {
	purchases ports.PurchaseAPI
	catalog   ports.CatalogAPI
	sessions  ports.SessionStore
	loc       *time.Location
	logger    zerolog.Logger
}

func NewPurchaseService(purchases ports.PurchaseAPI, catalog ports.CatalogAPI, sessions ports.SessionStore, loc *time.Location, logger zerolog.Logger) *PurchaseService {
	if loc == nil {
		loc = time.Local
	}
	return &PurchaseService{purchases: purchases, catalog: catalog, sessions: sessions, loc: loc, logger: logger}
}

// CreateGroupPurchase validates the host's form and opens the campaign. Pack
// size and prices come from the catalog, never from the request, and the form
// is re-normalized against them so quantities edited against stale bounds are
// clamped rather than rejected spuriously.
func (s *PurchaseService) CreateGroupPurchase(ctx context.Context, sessionID string, productID int64, form gongu.CreateForm) (*domain.GroupPurchase, error) {
	user := s.sessions.AuthUser(ctx, sessionID)
	if !user.IsLoggedIn {
		return nil, domain.ErrNotAuthenticated
	}
	if user.RegionID() <= 0 {
		return nil, domain.Invalid("region", "a resolved region is required to host a campaign")
	}

	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	form.PackSize = product.UnitQuantity
	form.PackagePrice = product.Price
	form.UnitPriceOverride = product.UnitPrice

	form.Normalize()
	if err := form.Validate(user, s.loc); err != nil {
		return nil, err
	}
	req, err := form.Request(user.RegionID(), s.loc)
	if err != nil {
		return nil, err
	}

	gp, err := s.purchases.CreateGroupPurchase(ctx, sessionID, productID, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("product_id", productID).Int64("group_purchase_id", gp.ID).Msg("group purchase created")
	return gp, nil
}

// JoinState builds the join read model from the authoritative campaign detail
// plus the product's pack facts. List snapshots are never trusted here.
func (s *PurchaseService) JoinState(ctx context.Context, sessionID string, groupPurchaseID int64) (*gongu.JoinState, error) {
	detail, err := s.purchases.GroupPurchaseDetail(ctx, sessionID, groupPurchaseID)
	if err != nil {
		return nil, err
	}
	product, err := s.catalog.Product(ctx, detail.ProductID)
	if err != nil {
		return nil, err
	}
	state := gongu.NewJoinState(*detail, product.UnitQuantity, product.Price, product.UnitPrice)
	return &state, nil
}

// Join validates a buyer's submission against a freshly fetched join state
// and creates the participation. When the server reports a positive share
// amount it wins over the client-side preview.
func (s *PurchaseService) Join(ctx context.Context, sessionID string, groupPurchaseID int64, form gongu.JoinForm) (*domain.Participation, error) {
	user := s.sessions.AuthUser(ctx, sessionID)

	state, err := s.JoinState(ctx, sessionID, groupPurchaseID)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(user, *state); err != nil {
		return nil, err
	}

	p, err := s.purchases.CreateParticipation(ctx, sessionID, groupPurchaseID, ports.ParticipationInput{
		Quantity:     form.Quantity,
		BuyerContact: form.BuyerContact,
	})
	if err != nil {
		return nil, err
	}
	if p.ShareAmount <= 0 {
		p.ShareAmount = form.TotalPreview(*state)
	}

	s.logger.Info().Int64("group_purchase_id", groupPurchaseID).Int("quantity", form.Quantity).Msg("participation created")
	return p, nil
}

// Participation returns one commitment for the payment screen.
func (s *PurchaseService) Participation(ctx context.Context, sessionID string, id int64) (*domain.Participation, error) {
	if !s.sessions.AuthUser(ctx, sessionID).IsLoggedIn {
		return nil, domain.ErrNotAuthenticated
	}
	return s.purchases.Participation(ctx, sessionID, id)
}

// ConfirmPayment marks a participation as paid.
func (s *PurchaseService) ConfirmPayment(ctx context.Context, sessionID string, participationID int64) (*domain.Participation, error) {
	if !s.sessions.AuthUser(ctx, sessionID).IsLoggedIn {
		return nil, domain.ErrNotAuthenticated
	}
	p, err := s.purchases.ConfirmPayment(ctx, sessionID, participationID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("participation_id", participationID).Msg("payment confirmed")
	return p, nil
}
