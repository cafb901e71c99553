package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/gongu"
)

type stubPurchaseFlows struct {
	createFn        func(ctx context.Context, sessionID string, productID int64, form gongu.CreateForm) (*domain.GroupPurchase, error)
	joinStateFn     func(ctx context.Context, sessionID string, groupPurchaseID int64) (*gongu.JoinState, error)
	joinFn          func(ctx context.Context, sessionID string, groupPurchaseID int64, form gongu.JoinForm) (*domain.Participation, error)
	participationFn func(ctx context.Context, sessionID string, id int64) (*domain.Participation, error)
	confirmFn       func(ctx context.Context, sessionID string, participationID int64) (*domain.Participation, error)
}

func (s *stubPurchaseFlows) CreateGroupPurchase(ctx context.Context, sessionID string, productID int64, form gongu.CreateForm) (*domain.GroupPurchase, error) {
	return s.createFn(ctx, sessionID, productID, form)
}

func (s *stubPurchaseFlows) JoinState(ctx context.Context, sessionID string, groupPurchaseID int64) (*gongu.JoinState, error) {
	return s.joinStateFn(ctx, sessionID, groupPurchaseID)
}

func (s *stubPurchaseFlows) Join(ctx context.Context, sessionID string, groupPurchaseID int64, form gongu.JoinForm) (*domain.Participation, error) {
	return s.joinFn(ctx, sessionID, groupPurchaseID, form)
}

func (s *stubPurchaseFlows) Participation(ctx context.Context, sessionID string, id int64) (*domain.Participation, error) {
	return s.participationFn(ctx, sessionID, id)
}

func (s *stubPurchaseFlows) ConfirmPayment(ctx context.Context, sessionID string, participationID int64) (*domain.Participation, error) {
	return s.confirmFn(ctx, sessionID, participationID)
}

func TestGonguHandler_Create_MapsForm(t *testing.T) {
	var gotProductID int64
	var gotForm gongu.CreateForm
	stub := &stubPurchaseFlows{
		createFn: func(ctx context.Context, sessionID string, productID int64, form gongu.CreateForm) (*domain.GroupPurchase, error) {
			gotProductID = productID
			gotForm = form
			return &domain.GroupPurchase{ID: 9}, nil
		},
	}
	h := NewGonguHandler(stub)

	body := `{
		"boxCount": 3,
		"hostBuyQuantity": 5,
		"minimumOrderUnit": 2,
		"hostContact": "010-1234-5678",
		"deliveryLocation": "서울 마포구 합정동",
		"pickupLocation": "합정역 2번 출구",
		"endDate": "2025-12-30",
		"pickupDate": "2025-12-31",
		"pickupMeridiem": "PM",
		"pickupHour": 6,
		"pickupMinute": 30
	}`
	c, rec := newJSONContext(http.MethodPost, "/api/products/7/group-purchases", body)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotProductID != 7 {
		t.Fatalf("expected product id 7, got %d", gotProductID)
	}
	if gotForm.BoxCount != 3 || gotForm.HostBuyQuantity != 5 || gotForm.PickupMeridiem != gongu.PM {
		t.Fatalf("unexpected form: %+v", gotForm)
	}
	if gotForm.EndDate != "2025-12-30" || gotForm.PickupHour != 6 || gotForm.PickupMinute != 30 {
		t.Fatalf("unexpected schedule fields: %+v", gotForm)
	}
}

func TestGonguHandler_Create_BadProductID(t *testing.T) {
	stub := &stubPurchaseFlows{
		createFn: func(ctx context.Context, sessionID string, productID int64, form gongu.CreateForm) (*domain.GroupPurchase, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	h := NewGonguHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/products/abc/group-purchases", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Create(c); err == nil {
		t.Fatal("expected an error for a non-numeric product id")
	}
}

func TestGonguHandler_JoinState(t *testing.T) {
	stub := &stubPurchaseFlows{
		joinStateFn: func(ctx context.Context, sessionID string, groupPurchaseID int64) (*gongu.JoinState, error) {
			if groupPurchaseID != 12 {
				t.Fatalf("expected id 12, got %d", groupPurchaseID)
			}
			return &gongu.JoinState{GroupPurchaseID: 12, Remaining: 5, MinimumOrderUnit: 2, InitialQuantity: 2}, nil
		},
	}
	h := NewGonguHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/api/group-purchases/12/join", "")
	c.SetParamNames("id")
	c.SetParamValues("12")

	if err := h.JoinState(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var state gongu.JoinState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if state.InitialQuantity != 2 || state.Remaining != 5 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestGonguHandler_Join_FullCampaignPassesThrough(t *testing.T) {
	stub := &stubPurchaseFlows{
		joinFn: func(ctx context.Context, sessionID string, groupPurchaseID int64, form gongu.JoinForm) (*domain.Participation, error) {
			return nil, domain.ErrGroupPurchaseFull
		},
	}
	h := NewGonguHandler(stub)

	body := `{"quantity":2,"buyerContact":"010-0000-0000","agreeDeadline":true,"agreePickup":true}`
	c, _ := newJSONContext(http.MethodPost, "/api/group-purchases/12/participations", body)
	c.SetParamNames("id")
	c.SetParamValues("12")

	if err := h.Join(c); err != domain.ErrGroupPurchaseFull {
		t.Fatalf("expected ErrGroupPurchaseFull to pass through, got %v", err)
	}
}

func TestGonguHandler_ConfirmPayment(t *testing.T) {
	stub := &stubPurchaseFlows{
		confirmFn: func(ctx context.Context, sessionID string, participationID int64) (*domain.Participation, error) {
			if participationID != 33 {
				t.Fatalf("expected participation 33, got %d", participationID)
			}
			return &domain.Participation{ParticipationID: 33, Status: "PAID"}, nil
		},
	}
	h := NewGonguHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/participations/33/payment", "")
	c.SetParamNames("id")
	c.SetParamValues("33")

	if err := h.ConfirmPayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
