package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/maz-edu/sellersbot/internal/domain"
)

// Memory is an in-memory Store for tests and development. It mirrors the
// Postgres semantics, including uniqueness of telegram_id and code strings.
type Memory struct {
	mu         sync.Mutex
	nextSeller int64
	nextCode   int64
	sellers    map[int64]domain.Seller
	codes      map[int64]domain.ReferralCode
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextSeller: 1,
		nextCode:   1,
		sellers:    make(map[int64]domain.Seller),
		codes:      make(map[int64]domain.ReferralCode),
	}
}

// SellerByTelegramID fetches a seller by Telegram account id.
func (m *Memory) SellerByTelegramID(_ context.Context, telegramID int64) (domain.Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sellers {
		if s.TelegramID == telegramID {
			return s, nil
		}
	}
	return domain.Seller{}, ErrSellerNotFound
}

// SellerByID fetches a seller by primary key.
func (m *Memory) SellerByID(_ context.Context, id int64) (domain.Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sellers[id]; ok {
		return s, nil
	}
	return domain.Seller{}, ErrSellerNotFound
}

// UpsertSeller inserts or updates by telegram id.
func (m *Memory) UpsertSeller(_ context.Context, seller domain.Seller) (domain.Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, existing := range m.sellers {
		if existing.TelegramID == seller.TelegramID {
			existing.Name = seller.Name
			existing.Username = seller.Username
			existing.Number = seller.Number
			existing.UpdatedAt = now
			m.sellers[id] = existing
			return existing, nil
		}
	}
	seller.ID = m.nextSeller
	m.nextSeller++
	seller.CreatedAt = now
	seller.UpdatedAt = now
	m.sellers[seller.ID] = seller
	return seller, nil
}

// CodeExists reports whether a code string is taken (exact match).
func (m *Memory) CodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codeTaken(code), nil
}

func (m *Memory) codeTaken(code string) bool {
	for _, c := range m.codes {
		if c.Code == code {
			return true
		}
	}
	return false
}

// InsertCode stores a new code, enforcing string uniqueness like the
// database constraint does.
func (m *Memory) InsertCode(_ context.Context, code domain.ReferralCode) (domain.ReferralCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codeTaken(code.Code) {
		return domain.ReferralCode{}, ErrDuplicateCode
	}
	now := time.Now()
	code.ID = m.nextCode
	m.nextCode++
	code.CreatedAt = now
	code.UpdatedAt = now
	m.codes[code.ID] = code
	return code, nil
}

// CodeByID fetches a code by primary key.
func (m *Memory) CodeByID(_ context.Context, id int64) (domain.ReferralCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.codes[id]; ok {
		return c, nil
	}
	return domain.ReferralCode{}, ErrCodeNotFound
}

// DeleteCode removes a code by primary key.
func (m *Memory) DeleteCode(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.codes[id]; !ok {
		return ErrCodeNotFound
	}
	delete(m.codes, id)
	return nil
}

// CodesByOwner lists codes owned by a seller, newest first.
func (m *Memory) CodesByOwner(_ context.Context, ownerID int64) ([]domain.ReferralCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var codes []domain.ReferralCode
	for _, c := range m.codes {
		if c.OwnerID == ownerID {
			codes = append(codes, c)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].ID > codes[j].ID })
	return codes, nil
}
