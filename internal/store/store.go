// Package store persists sellers and referral codes. The Postgres
// implementation is the production path; Memory mirrors its semantics for
// unit tests and local development.
package store

import (
	"context"
	"errors"

	"github.com/maz-edu/sellersbot/internal/domain"
)

var (
	// ErrSellerNotFound is returned when no seller matches the query.
	ErrSellerNotFound = errors.New("seller not found")

	// ErrCodeNotFound is returned when no referral code matches the query.
	ErrCodeNotFound = errors.New("referral code not found")

	// ErrDuplicateCode is returned when inserting a code whose string already
	// exists. The unique constraint is the authority; the conversational
	// pre-check only saves the user a round trip.
	ErrDuplicateCode = errors.New("referral code already exists")
)

// Store is the entity store used by the conversation flows.
type Store interface {
	SellerByTelegramID(ctx context.Context, telegramID int64) (domain.Seller, error)
	SellerByID(ctx context.Context, id int64) (domain.Seller, error)
	UpsertSeller(ctx context.Context, seller domain.Seller) (domain.Seller, error)

	CodeExists(ctx context.Context, code string) (bool, error)
	InsertCode(ctx context.Context, code domain.ReferralCode) (domain.ReferralCode, error)
	CodeByID(ctx context.Context, id int64) (domain.ReferralCode, error)
	DeleteCode(ctx context.Context, id int64) error
	CodesByOwner(ctx context.Context, ownerID int64) ([]domain.ReferralCode, error)
}
