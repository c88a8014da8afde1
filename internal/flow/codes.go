package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/maz-edu/sellersbot/core/logger"
	"github.com/maz-edu/sellersbot/internal/domain"
	"github.com/maz-edu/sellersbot/internal/store"
)

// Callback actions produced by the code-management inline keyboards.
const (
	ActionCode       = "code"
	ActionDeleteCode = "delete_code"
	ActionListCodes  = "list_codes"
)

// Codes lists, inspects and deletes a seller's referral codes. Listing and
// deleting resolve the caller to a registered seller; deletion additionally
// requires ownership.
type Codes struct {
	store store.Store
	log   *slog.Logger
}

// NewCodes constructs the code manager.
func NewCodes(st store.Store) *Codes {
	return &Codes{store: st, log: logger.Component("flow.codes")}
}

// requireSeller resolves the Telegram user to a registered seller.
func (c *Codes) requireSeller(ctx context.Context, userID int64) (domain.Seller, error) {
	seller, err := c.store.SellerByTelegramID(ctx, userID)
	if errors.Is(err, store.ErrSellerNotFound) {
		return domain.Seller{}, ErrNotRegistered
	}
	return seller, err
}

// List replies with the caller's codes as an inline keyboard, one button per
// code. Unregistered callers are redirected to /register.
func (c *Codes) List(ctx context.Context, userID int64, edit bool) ([]Reply, error) {
	seller, err := c.requireSeller(ctx, userID)
	if errors.Is(err, ErrNotRegistered) {
		return []Reply{
			{Text: msgNotRegistered},
			{Text: msgWelcome},
		}, nil
	}
	if err != nil {
		return []Reply{{Text: msgInternal}}, err
	}

	codes, err := c.store.CodesByOwner(ctx, seller.ID)
	if err != nil {
		return []Reply{{Text: msgInternal}}, err
	}

	rows := make([][]Button, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, []Button{{
			Text:    code.Code,
			Action:  ActionCode,
			Payload: strconv.FormatInt(code.ID, 10),
		}})
	}
	return []Reply{{Text: msgCodeList, Inline: rows, Edit: edit}}, nil
}

// Inspect replies with one code's details and a delete/back keyboard,
// editing the triggering list message in place.
func (c *Codes) Inspect(ctx context.Context, codeID int64) ([]Reply, error) {
	code, err := c.store.CodeByID(ctx, codeID)
	if errors.Is(err, store.ErrCodeNotFound) {
		return []Reply{{Text: msgCodeGone, Edit: true}}, nil
	}
	if err != nil {
		return []Reply{{Text: msgInternal}}, err
	}

	purchase := labelCash
	if code.Installment {
		purchase = labelInstallment
	}
	detail := fmt.Sprintf(
		"کد %s \n\n مقدار تخفیف %d تومان \n\n محصول %s \n\n نوع خرید %s \n\n تاریخ ایجاد: %s",
		code.Code,
		code.Discount,
		code.Product.Label(),
		purchase,
		code.CreatedAt.Format("2006-01-02 15:04"),
	)
	payload := strconv.FormatInt(code.ID, 10)
	return []Reply{{
		Text: detail,
		Edit: true,
		Inline: [][]Button{{
			{Text: labelDelete, Action: ActionDeleteCode, Payload: payload},
			{Text: labelBack, Action: ActionListCodes},
		}},
	}}, nil
}

// Delete removes one of the caller's codes and re-renders the list.
func (c *Codes) Delete(ctx context.Context, userID, codeID int64) ([]Reply, error) {
	code, err := c.deleteOwned(ctx, userID, codeID)
	switch {
	case errors.Is(err, ErrNotRegistered), errors.Is(err, ErrNotOwner):
		return []Reply{{Text: msgDeleteRefused}}, nil
	case errors.Is(err, store.ErrCodeNotFound):
		return []Reply{{Text: msgCodeGone, Edit: true}}, nil
	case err != nil:
		return []Reply{{Text: msgInternal}}, err
	}

	c.log.Info("code deleted",
		slog.String("event", "code.deleted"),
		slog.Int64("user_id", userID),
		slog.Int64("code_id", codeID),
		slog.String("code", code.Code),
	)

	replies := []Reply{{Text: msgCodeDeleted, Edit: true}}
	list, err := c.List(ctx, userID, false)
	if err != nil {
		return replies, err
	}
	return append(replies, list...), nil
}

// deleteOwned enforces registration and ownership before the delete. The
// refused cases make no mutation.
func (c *Codes) deleteOwned(ctx context.Context, userID, codeID int64) (domain.ReferralCode, error) {
	seller, err := c.requireSeller(ctx, userID)
	if err != nil {
		return domain.ReferralCode{}, err
	}

	code, err := c.store.CodeByID(ctx, codeID)
	if err != nil {
		return domain.ReferralCode{}, err
	}
	if code.OwnerID != seller.ID {
		return domain.ReferralCode{}, ErrNotOwner
	}

	return code, c.store.DeleteCode(ctx, codeID)
}
