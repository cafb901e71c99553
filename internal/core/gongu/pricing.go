// Package gongu holds the group-purchase pricing, quantity, and
// participation-eligibility rules. Everything here is pure and synchronous;
// services recompute on every relevant input change and callers never see
// silently invalid quantities.
package gongu

import "math"

// Clamp constrains n to [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// PerUnitPrice derives the per-unit price from the package (box) price and the
// pack size. A positive backend-supplied override wins unconditionally.
func PerUnitPrice(packagePrice, packCount, backendOverride int) int {
	if backendOverride > 0 {
		return backendOverride
	}
	count := packCount
	if count < 1 {
		count = 1
	}
	return int(math.Round(float64(packagePrice) / float64(count)))
}

// TotalPrice is the per-unit price times the chosen quantity.
func TotalPrice(perUnitPrice, quantity int) int {
	return perUnitPrice * quantity
}

// TargetQuantity is the host-chosen box count times the pack size. Box count
// defaults to one box.
func TargetQuantity(boxCount, packSize int) int {
	if boxCount < 1 {
		boxCount = 1
	}
	return boxCount * packSize
}

// RemainingQuantity is the capacity left for participants, never negative.
func RemainingQuantity(target, current int) int {
	if target < current {
		return 0
	}
	return target - current
}

// MaxHostBuyQuantity caps the host's own claim: when the target exceeds one
// unit the host must leave room for at least one other participant.
func MaxHostBuyQuantity(target int) int {
	if target > 1 {
		return target - 1
	}
	return target
}

// MaxMinimumOrderUnit caps the minimum order unit at the remaining quantity,
// but never below one.
func MaxMinimumOrderUnit(remaining int) int {
	if remaining < 1 {
		return 1
	}
	return remaining
}
