package service

import (
	"context"

	"github.com/google/uuid"
)

// PaymentGateway is the external payment collaborator. Wire protocol details
// live behind it; the checkout engine only needs a reference and whether the
// charge confirmed synchronously.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64) (ref string, confirmed bool, err error)
}

// WalletGateway stands in for an external wallet provider that confirms
// charges synchronously.
type WalletGateway struct{}

func (WalletGateway) CreateIntent(ctx context.Context, amount int64) (string, bool, error) {
	return uuid.NewString(), true, nil
}

// ImageStore resolves stored image references into client-facing URLs.
type ImageStore interface {
	ResolveURL(ref string) string
}

type StaticImageStore struct {
	BaseURL string
}

func (s StaticImageStore) ResolveURL(ref string) string {
	if ref == "" {
		return ""
	}
	return s.BaseURL + "/" + ref
}
