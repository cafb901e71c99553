package gongu

import (
	"errors"
	"testing"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
)

func buyerSession() domain.Session {
	return domain.Session{IsLoggedIn: true, UserType: domain.UserTypeBuyer, ID: 42, NickName: "gongu-lover"}
}

func joinDetail() domain.GroupPurchaseDetail {
	return domain.GroupPurchaseDetail{
		GroupPurchaseID:  9,
		ProductName:      "제주 감귤 12입",
		TargetQuantity:   1, // boxes
		CurrentQuantity:  7, // pieces already claimed
		MinimumOrderUnit: 3,
		GroupEndAt:       "2025-12-30T23:59:00+09:00",
		PickupLocation:   "망원시장 입구",
		PickupAt:         "2025-12-31T18:30:00+09:00",
	}
}

func TestNewJoinState_DerivesRemaining(t *testing.T) {
	s := NewJoinState(joinDetail(), 12, 12000, 0)

	if s.TotalTargetPieces != 12 {
		t.Fatalf("total target pieces = %d, want 12", s.TotalTargetPieces)
	}
	if s.Remaining != 5 {
		t.Fatalf("remaining = %d, want 5", s.Remaining)
	}
	if s.PerUnitPrice != 1000 {
		t.Fatalf("per unit = %d, want 1000", s.PerUnitPrice)
	}
	// Pre-filled quantity equals the minimum order unit when it fits.
	if s.InitialQuantity != 3 {
		t.Fatalf("initial quantity = %d, want 3", s.InitialQuantity)
	}
}

func TestNewJoinState_FullCampaign(t *testing.T) {
	d := joinDetail()
	d.CurrentQuantity = 12

	s := NewJoinState(d, 12, 12000, 0)

	if s.Remaining != 0 {
		t.Fatalf("remaining = %d, want 0", s.Remaining)
	}
	if s.InitialQuantity != 0 {
		t.Fatalf("initial quantity = %d, want 0", s.InitialQuantity)
	}
	err := JoinForm{Quantity: 1, BuyerContact: "010", AgreeDeadline: true, AgreePickup: true}.
		Validate(buyerSession(), s)
	if !errors.Is(err, domain.ErrGroupPurchaseFull) {
		t.Fatalf("expected ErrGroupPurchaseFull, got %v", err)
	}
}

func TestNewJoinState_ClampsInitialQuantity(t *testing.T) {
	d := joinDetail()
	d.CurrentQuantity = 10 // remaining 2, minimum order unit 3
	s := NewJoinState(d, 12, 12000, 0)

	if s.Remaining != 2 {
		t.Fatalf("remaining = %d, want 2", s.Remaining)
	}
	if s.InitialQuantity != 2 {
		t.Fatalf("initial quantity clamped to remaining: got %d, want 2", s.InitialQuantity)
	}
}

func TestJoinForm_SubmissionGate(t *testing.T) {
	s := NewJoinState(joinDetail(), 12, 12000, 0) // remaining 5, min unit 3

	form := JoinForm{Quantity: 2, BuyerContact: "010-1234-5678", AgreeDeadline: true, AgreePickup: true}
	if err := form.Validate(buyerSession(), s); err == nil {
		t.Fatal("quantity below minimum order unit must block submission")
	}

	form.Quantity = 3
	if err := form.Validate(buyerSession(), s); err != nil {
		t.Fatalf("expected submittable form, got %v", err)
	}

	form.Quantity = 6
	if err := form.Validate(buyerSession(), s); err == nil {
		t.Fatal("quantity above remaining must block submission")
	}
}

func TestJoinForm_AcknowledgementsRequired(t *testing.T) {
	s := NewJoinState(joinDetail(), 12, 12000, 0)
	base := JoinForm{Quantity: 3, BuyerContact: "010-1234-5678", AgreeDeadline: true, AgreePickup: true}

	noDeadline := base
	noDeadline.AgreeDeadline = false
	if err := noDeadline.Validate(buyerSession(), s); err == nil {
		t.Fatal("deadline acknowledgement is a mandatory gate")
	}

	noPickup := base
	noPickup.AgreePickup = false
	if err := noPickup.Validate(buyerSession(), s); err == nil {
		t.Fatal("pickup acknowledgement is a mandatory gate")
	}

	blankContact := base
	blankContact.BuyerContact = "  "
	if err := blankContact.Validate(buyerSession(), s); err == nil {
		t.Fatal("contact is required")
	}
}

func TestJoinForm_GuestBlocked(t *testing.T) {
	s := NewJoinState(joinDetail(), 12, 12000, 0)
	form := JoinForm{Quantity: 3, BuyerContact: "010", AgreeDeadline: true, AgreePickup: true}

	if err := form.Validate(domain.GuestSession(), s); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestJoinForm_TotalPreview(t *testing.T) {
	s := NewJoinState(joinDetail(), 12, 12000, 0)
	form := JoinForm{Quantity: 3}

	if got := form.TotalPreview(s); got != 3000 {
		t.Fatalf("total preview = %d, want 3000", got)
	}
}
