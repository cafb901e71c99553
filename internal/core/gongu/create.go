package gongu

import (
	"strings"
	"time"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
)

// CreateForm carries everything a host enters in the campaign-creation modal.
// Derived quantities and prices are recomputed from the current field values;
// Normalize re-clamps the editable quantities whenever the bounds move.
type CreateForm struct {
	// Product facts.
	PackSize          int
	PackagePrice      int
	UnitPriceOverride int

	// Host choices.
	BoxCount         int
	HostBuyQuantity  int
	MinimumOrderUnit int
	HostContact      string
	DeliveryLocation string
	PickupLocation   string
	PickupAfterEnd   bool

	// Deadline and pickup inputs.
	EndDate        string
	PickupDate     string
	PickupMeridiem Meridiem
	PickupHour     int
	PickupMinute   int
}

// Target is the campaign's target quantity in pieces.
func (f CreateForm) Target() int {
	return TargetQuantity(f.BoxCount, f.PackSize)
}

// Remaining is what participants can still claim after the host's share.
func (f CreateForm) Remaining() int {
	return RemainingQuantity(f.Target(), f.HostBuyQuantity)
}

// PerUnit is the derived (or backend-supplied) per-unit price.
func (f CreateForm) PerUnit() int {
	return PerUnitPrice(f.PackagePrice, f.PackSize, f.UnitPriceOverride)
}

// Total is the host's own charge preview.
func (f CreateForm) Total() int {
	return TotalPrice(f.PerUnit(), f.HostBuyQuantity)
}

// Normalize re-clamps the host quantity and minimum order unit into their
// current valid ranges. Must be applied whenever target or remaining changes
// so previously chosen values are never silently invalid or zero.
func (f *CreateForm) Normalize() {
	f.HostBuyQuantity = Clamp(f.HostBuyQuantity, 1, MaxHostBuyQuantity(f.Target()))
	f.MinimumOrderUnit = Clamp(f.MinimumOrderUnit, 1, MaxMinimumOrderUnit(f.Remaining()))
}

// Validate is the submission gate for campaign creation. It returns nil only
// when every rule holds; the first violated rule is reported as a
// *domain.ValidationError and nothing is sent upstream.
func (f CreateForm) Validate(user domain.Session, loc *time.Location) error {
	if !user.IsLoggedIn {
		return domain.ErrNotAuthenticated
	}
	if user.RegionID() <= 0 {
		return domain.Invalid("region", "a resolved region is required to host a campaign")
	}

	target := f.Target()
	if f.HostBuyQuantity < 1 || f.HostBuyQuantity > MaxHostBuyQuantity(target) {
		return domain.Invalid("hostBuyQuantity", "host quantity out of range")
	}
	if f.Remaining() < 1 {
		return domain.Invalid("targetQuantity", "campaign must leave quantity for participants")
	}
	if f.MinimumOrderUnit < 1 || f.MinimumOrderUnit > MaxMinimumOrderUnit(f.Remaining()) {
		return domain.Invalid("minimumOrderUnit", "minimum order unit out of range")
	}
	if strings.TrimSpace(f.HostContact) == "" {
		return domain.Invalid("hostContact", "contact is required")
	}
	if strings.TrimSpace(f.DeliveryLocation) == "" {
		return domain.Invalid("deliveryLocation", "delivery address is required")
	}
	if strings.TrimSpace(f.PickupLocation) == "" {
		return domain.Invalid("pickupLocation", "pickup location is required")
	}
	if f.EndDate == "" {
		return domain.Invalid("groupEndAt", "end date is required")
	}
	if f.PickupDate == "" {
		return domain.Invalid("pickupAt", "pickup date is required")
	}
	if _, err := GroupEndAt(f.EndDate, loc); err != nil {
		return err
	}
	if _, err := PickupAt(f.PickupDate, f.PickupMeridiem, f.PickupHour, f.PickupMinute, loc); err != nil {
		return err
	}
	return nil
}

// CreateRequest is the normalized upstream payload for
// POST /api/products/{id}/group-purchases.
type CreateRequest struct {
	RegionID         int64  `json:"regionId"`
	HostBuyQuantity  int    `json:"hostBuyQuantity"`
	TargetQuantity   int    `json:"targetQuantity"`
	MinimumOrderUnit int    `json:"minimumOrderUnit"`
	GroupEndAt       string `json:"groupEndAt"`
	DeliveryLocation string `json:"deliveryLocation"`
	PickupLocation   string `json:"pickupLocation"`
	PickupAt         string `json:"pickupAt"`
	HostContact      string `json:"hostContact"`
	PickupAfterEnd   bool   `json:"pickupAfterEnd"`
}

// Request composes the upstream payload, including both serialized instants.
// Callers validate first; Request repeats only the instant composition.
func (f CreateForm) Request(regionID int64, loc *time.Location) (CreateRequest, error) {
	endAt, err := GroupEndAt(f.EndDate, loc)
	if err != nil {
		return CreateRequest{}, err
	}
	pickupAt, err := PickupAt(f.PickupDate, f.PickupMeridiem, f.PickupHour, f.PickupMinute, loc)
	if err != nil {
		return CreateRequest{}, err
	}
	return CreateRequest{
		RegionID:         regionID,
		HostBuyQuantity:  f.HostBuyQuantity,
		TargetQuantity:   f.Target(),
		MinimumOrderUnit: f.MinimumOrderUnit,
		GroupEndAt:       endAt,
		DeliveryLocation: strings.TrimSpace(f.DeliveryLocation),
		PickupLocation:   strings.TrimSpace(f.PickupLocation),
		PickupAt:         pickupAt,
		HostContact:      strings.TrimSpace(f.HostContact),
		PickupAfterEnd:   f.PickupAfterEnd,
	}, nil
}
