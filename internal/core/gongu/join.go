package gongu

import (
	"strings"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
)

// JoinState is the read model a buyer sees in the join modal. It is derived
// from the authoritative group-purchase detail, never from a list snapshot.
type JoinState struct {
	GroupPurchaseID   int64  `json:"groupPurchaseId"`
	ProductName       string `json:"productName"`
	PackSize          int    `json:"packSize"`
	PerUnitPrice      int    `json:"perUnitPrice"`
	TotalTargetPieces int    `json:"totalTargetPieces"`
	CurrentQuantity   int    `json:"currentQuantity"`
	Remaining         int    `json:"remaining"`
	MinimumOrderUnit  int    `json:"minimumOrderUnit"`
	InitialQuantity   int    `json:"initialQuantity"`
	GroupEndAt        string `json:"groupEndAt"`
	PickupLocation    string `json:"pickupLocation"`
	PickupAt          string `json:"pickupAt"`
}

// NewJoinState derives the join read model. Target quantity from the detail is
// in boxes; participants buy pieces, so capacity is target × pack size minus
// what is already claimed.
func NewJoinState(detail domain.GroupPurchaseDetail, packSize, packagePrice, unitPriceOverride int) JoinState {
	pack := packSize
	if pack < 1 {
		pack = 1
	}

	total := detail.TargetQuantity * pack
	if total < 0 {
		total = 0
	}
	remaining := RemainingQuantity(total, detail.CurrentQuantity)

	minUnit := detail.MinimumOrderUnit
	if minUnit < 1 {
		minUnit = 1
	}

	s := JoinState{
		GroupPurchaseID:   detail.GroupPurchaseID,
		ProductName:       detail.ProductName,
		PackSize:          pack,
		PerUnitPrice:      PerUnitPrice(packagePrice, pack, unitPriceOverride),
		TotalTargetPieces: total,
		CurrentQuantity:   detail.CurrentQuantity,
		Remaining:         remaining,
		MinimumOrderUnit:  minUnit,
		GroupEndAt:        detail.GroupEndAt,
		PickupLocation:    detail.PickupLocation,
		PickupAt:          detail.PickupAt,
	}
	s.InitialQuantity = s.proposedQuantity()
	return s
}

// proposedQuantity is the pre-filled buy quantity: the minimum order unit
// clamped into what is actually left, or 0 when the campaign is full.
func (s JoinState) proposedQuantity() int {
	if s.Remaining <= 0 {
		return 0
	}
	max := s.Remaining
	if max < 1 {
		max = 1
	}
	return Clamp(s.MinimumOrderUnit, 1, max)
}

// MaxBuyQuantity is the ceiling for a participant's quantity.
func (s JoinState) MaxBuyQuantity() int {
	if s.Remaining < 0 {
		return 0
	}
	return s.Remaining
}

// JoinForm is a buyer's join submission. Both acknowledgements are mandatory
// gates independent of the arithmetic.
type JoinForm struct {
	Quantity      int    `json:"quantity"`
	BuyerContact  string `json:"buyerContact"`
	AgreeDeadline bool   `json:"agreeDeadline"`
	AgreePickup   bool   `json:"agreePickup"`
}

// Validate is the join submission gate. Nil means every rule holds and the
// participation may be sent upstream.
func (f JoinForm) Validate(user domain.Session, s JoinState) error {
	if !user.IsLoggedIn {
		return domain.ErrNotAuthenticated
	}
	if s.GroupPurchaseID <= 0 {
		return domain.Invalid("groupPurchaseId", "unknown group purchase")
	}
	if s.Remaining < s.MinimumOrderUnit {
		return domain.ErrGroupPurchaseFull
	}
	if f.Quantity < s.MinimumOrderUnit {
		return domain.Invalid("quantity", "below the minimum order unit")
	}
	if f.Quantity > s.MaxBuyQuantity() {
		return domain.Invalid("quantity", "exceeds the remaining quantity")
	}
	if strings.TrimSpace(f.BuyerContact) == "" {
		return domain.Invalid("buyerContact", "contact is required")
	}
	if !f.AgreeDeadline {
		return domain.Invalid("agreeDeadline", "deadline-cancellation acknowledgement is required")
	}
	if !f.AgreePickup {
		return domain.Invalid("agreePickup", "pickup acknowledgement is required")
	}
	return nil
}

// TotalPreview is the client-side charge estimate. The server-returned share
// amount, when positive, is authoritative over this preview.
func (f JoinForm) TotalPreview(s JoinState) int {
	return TotalPrice(s.PerUnitPrice, f.Quantity)
}
