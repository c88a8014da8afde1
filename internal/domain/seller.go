package domain

import "time"

// Seller is a registered sales agent identified by their Telegram account.
// Registration upserts by TelegramID, so a seller re-running the flow updates
// the existing row instead of creating a duplicate.
type Seller struct {
	ID         int64     `db:"id"`
	TelegramID int64     `db:"telegram_id"`
	Name       string    `db:"name"`
	Username   string    `db:"username"`
	Number     string    `db:"number"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
