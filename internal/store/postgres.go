package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/maz-edu/sellersbot/internal/domain"
)

const pgUniqueViolation = "23505"

// Postgres implements Store on top of sqlx.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps an already-connected database handle.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// SellerByTelegramID fetches a seller by their Telegram account id.
func (s *Postgres) SellerByTelegramID(ctx context.Context, telegramID int64) (domain.Seller, error) {
	var seller domain.Seller
	err := s.db.GetContext(ctx, &seller,
		`SELECT id, telegram_id, name, username, number, created_at, updated_at
		 FROM sellers WHERE telegram_id = $1`, telegramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Seller{}, ErrSellerNotFound
		}
		return domain.Seller{}, fmt.Errorf("seller by telegram id %d: %w", telegramID, err)
	}
	return seller, nil
}

// SellerByID fetches a seller by primary key.
func (s *Postgres) SellerByID(ctx context.Context, id int64) (domain.Seller, error) {
	var seller domain.Seller
	err := s.db.GetContext(ctx, &seller,
		`SELECT id, telegram_id, name, username, number, created_at, updated_at
		 FROM sellers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Seller{}, ErrSellerNotFound
		}
		return domain.Seller{}, fmt.Errorf("seller by id %d: %w", id, err)
	}
	return seller, nil
}

// UpsertSeller inserts a seller or, when the telegram id is already
// registered, updates name, username, number and the updated_at stamp.
func (s *Postgres) UpsertSeller(ctx context.Context, seller domain.Seller) (domain.Seller, error) {
	var saved domain.Seller
	err := s.db.GetContext(ctx, &saved,
		`INSERT INTO sellers (telegram_id, name, username, number)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (telegram_id) DO UPDATE
		 SET name = EXCLUDED.name,
		     username = EXCLUDED.username,
		     number = EXCLUDED.number,
		     updated_at = now()
		 RETURNING id, telegram_id, name, username, number, created_at, updated_at`,
		seller.TelegramID, seller.Name, seller.Username, seller.Number)
	if err != nil {
		return domain.Seller{}, fmt.Errorf("upsert seller tg=%d: %w", seller.TelegramID, err)
	}
	return saved, nil
}

// CodeExists reports whether a referral code string is already taken.
// The match is case-sensitive and exact.
func (s *Postgres) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM referral_codes WHERE code = $1)`, code)
	if err != nil {
		return false, fmt.Errorf("code exists %q: %w", code, err)
	}
	return exists, nil
}

// InsertCode stores a new referral code. A unique-constraint violation on the
// code column is translated to ErrDuplicateCode so a lost check-then-insert
// race never reaches the user as a raw database error.
func (s *Postgres) InsertCode(ctx context.Context, code domain.ReferralCode) (domain.ReferralCode, error) {
	var saved domain.ReferralCode
	err := s.db.GetContext(ctx, &saved,
		`INSERT INTO referral_codes (owner_id, code, product, installment, discount)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, owner_id, code, product, installment, discount, created_at, updated_at`,
		code.OwnerID, code.Code, code.Product, code.Installment, code.Discount)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return domain.ReferralCode{}, ErrDuplicateCode
		}
		return domain.ReferralCode{}, fmt.Errorf("insert code %q: %w", code.Code, err)
	}
	return saved, nil
}

// CodeByID fetches a referral code by primary key.
func (s *Postgres) CodeByID(ctx context.Context, id int64) (domain.ReferralCode, error) {
	var code domain.ReferralCode
	err := s.db.GetContext(ctx, &code,
		`SELECT id, owner_id, code, product, installment, discount, created_at, updated_at
		 FROM referral_codes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ReferralCode{}, ErrCodeNotFound
		}
		return domain.ReferralCode{}, fmt.Errorf("code by id %d: %w", id, err)
	}
	return code, nil
}

// DeleteCode removes a referral code by primary key.
func (s *Postgres) DeleteCode(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM referral_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete code %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrCodeNotFound
	}
	return nil
}

// CodesByOwner lists all codes owned by a seller, newest first.
func (s *Postgres) CodesByOwner(ctx context.Context, ownerID int64) ([]domain.ReferralCode, error) {
	var codes []domain.ReferralCode
	err := s.db.SelectContext(ctx, &codes,
		`SELECT id, owner_id, code, product, installment, discount, created_at, updated_at
		 FROM referral_codes WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("codes by owner %d: %w", ownerID, err)
	}
	return codes, nil
}
