package service

import (
	"context"
	"fmt"

	"github.com/efoodhub/backend/internal/cache"
	"github.com/efoodhub/backend/internal/models"
	"github.com/efoodhub/backend/internal/repo"
)

type CheckoutService struct {
	Repo    *repo.GormRepo
	Cache   *cache.Client
	Gateway PaymentGateway
}

type PlaceOrderInput struct {
	SubCartID      uint
	AddressID      uint
	ShippingFee    int64
	Total          int64
	PaymentMethod  string
	IdempotencyKey string
}

// PlaceOrder runs the checkout: claim the idempotency key, obtain a payment
// intent for wallet charges, then hand the atomic conversion to the repo.
// Cash on delivery is recorded as accepted, not paid.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uint, in PlaceOrderInput) (*models.Order, error) {
	if in.SubCartID == 0 || in.AddressID == 0 {
		return nil, fmt.Errorf("%w: sub_cart_id and address_id required", ErrValidation)
	}
	if in.ShippingFee < 0 || in.Total <= 0 {
		return nil, fmt.Errorf("%w: total must be positive", ErrValidation)
	}

	method, err := normalizeMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		claimed, err := s.Cache.ClaimIdempotencyKey(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, fmt.Errorf("%w: order already placed with this key", ErrConflict)
		}
	}

	var (
		paymentRef string
		paymentOK  bool
	)
	if method == models.PaymentMethodWallet {
		paymentRef, paymentOK, err = s.Gateway.CreateIntent(ctx, in.Total)
		if err != nil {
			s.releaseKey(ctx, in.IdempotencyKey)
			return nil, fmt.Errorf("payment gateway: %w", err)
		}
	}

	order, err := s.Repo.PlaceOrder(ctx, repo.PlaceOrderParams{
		UserID:        userID,
		SubCartID:     in.SubCartID,
		AddressID:     in.AddressID,
		ShippingFee:   in.ShippingFee,
		Total:         in.Total,
		PaymentMethod: method,
		PaymentRef:    paymentRef,
		PaymentOK:     paymentOK,
	})
	if err != nil {
		// the transaction rolled back, so the key must be retryable
		s.releaseKey(ctx, in.IdempotencyKey)
		return nil, mapStoreErr(err)
	}
	return order, nil
}

func (s *CheckoutService) releaseKey(ctx context.Context, key string) {
	if key != "" {
		s.Cache.ReleaseIdempotencyKey(ctx, key)
	}
}

// normalizeMethod accepts the wire spellings of the payment method. "cash"
// maps to cash on delivery, anything wallet-ish to the external wallet.
func normalizeMethod(method string) (string, error) {
	switch method {
	case "cash", models.PaymentMethodCOD:
		return models.PaymentMethodCOD, nil
	case models.PaymentMethodWallet:
		return models.PaymentMethodWallet, nil
	}
	return "", fmt.Errorf("%w: unknown payment method %q", ErrValidation, method)
}
