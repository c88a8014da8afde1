// Package bot binds the conversation flows to the Telegram transport:
// commands, callbacks and the text dispatch of in-progress conversations.
package bot

import (
	tele "gopkg.in/telebot.v4"

	tg "github.com/maz-edu/sellersbot/core/telegram"
	"github.com/maz-edu/sellersbot/core/telegram/callbacks"
	"github.com/maz-edu/sellersbot/core/telegram/commands"
	tghelpers "github.com/maz-edu/sellersbot/core/telegram/helpers"
	"github.com/maz-edu/sellersbot/core/telegram/router"
	"github.com/maz-edu/sellersbot/internal/flow"
	"github.com/maz-edu/sellersbot/internal/otp"
	"github.com/maz-edu/sellersbot/internal/store"
)

// Service owns the bot's flows and registers their Telegram surface.
type Service struct {
	registration *flow.Registration
	referral     *flow.Referral
	codes        *flow.Codes

	fsm *conversations
}

// New wires the flows against their dependencies.
func New(st store.Store, verifier *otp.Verifier) *Service {
	codes := flow.NewCodes(st)
	return &Service{
		registration: flow.NewRegistration(st, verifier),
		referral:     flow.NewReferral(st, codes),
		codes:        codes,
	}
}

// Register adds all commands and callbacks to the registry and prepares the
// FSM facade used by the text router.
func (s *Service) Register(reg *tg.Registry) {
	s.fsm = &conversations{
		registration: s.registration,
		referral:     s.referral,
		registry:     reg,
	}

	reg.RegisterCommand("/start", commands.Command{
		Handler:     s.handleStart,
		Description: "شروع ربات",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     s.handleHelp,
		Description: "راهنمایی",
	})
	reg.RegisterCommand("/register", commands.Command{
		Handler:     s.handleRegister,
		Description: "ثبت نام",
	})
	reg.RegisterCommand("/add_code", commands.Command{
		Handler:     s.handleAddCode,
		Description: "اضافه کردن کد",
	})
	reg.RegisterCommand("/list_codes", commands.Command{
		Handler:     s.handleListCodes,
		Description: "لیست کد ها و مدیریت کد ها",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     s.handleCancel,
		Description: "لغو فرآیند جاری",
		Hidden:      true,
	})

	_ = reg.RegisterCallback(flow.ActionCode, s.callbackInspect)
	_ = reg.RegisterCallback(flow.ActionDeleteCode, s.callbackDelete)
	_ = reg.RegisterCallback(flow.ActionListCodes, s.callbackList)
}

// FSM returns the text-dispatch facade. Register must run first.
func (s *Service) FSM() router.FSM {
	return s.fsm
}

func eventFrom(c tele.Context) flow.Event {
	ev := flow.Event{Text: c.Text()}
	if sender := c.Sender(); sender != nil {
		ev.UserID = sender.ID
		ev.Username = sender.Username
	}
	return ev
}

func (s *Service) handleStart(c tele.Context) error {
	return sendReplies(c, flow.Greeting())
}

func (s *Service) handleHelp(c tele.Context) error {
	return sendReplies(c, flow.Help())
}

func (s *Service) handleRegister(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	replies, err := s.registration.Start(ctx, eventFrom(c))
	if sendErr := sendReplies(c, replies); sendErr != nil && err == nil {
		err = sendErr
	}
	return err
}

func (s *Service) handleAddCode(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	replies, err := s.referral.Start(ctx, eventFrom(c))
	if sendErr := sendReplies(c, replies); sendErr != nil && err == nil {
		err = sendErr
	}
	return err
}

func (s *Service) handleListCodes(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	replies, err := s.codes.List(ctx, sender.ID, false)
	if sendErr := sendReplies(c, replies); sendErr != nil && err == nil {
		err = sendErr
	}
	return err
}

func (s *Service) handleCancel(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	return sendReplies(c, s.fsm.cancel(sender.ID))
}

func (s *Service) callbackInspect(c tele.Context) error {
	codeID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return err
	}
	ctx := tghelpers.BuildContext(c)
	replies, err := s.codes.Inspect(ctx, codeID)
	if sendErr := sendReplies(c, replies); sendErr != nil && err == nil {
		err = sendErr
	}
	return err
}

func (s *Service) callbackDelete(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	codeID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return err
	}
	ctx := tghelpers.BuildContext(c)
	replies, err := s.codes.Delete(ctx, sender.ID, codeID)
	if sendErr := sendReplies(c, replies); sendErr != nil && err == nil {
		err = sendErr
	}
	return err
}

func (s *Service) callbackList(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	replies, err := s.codes.List(ctx, sender.ID, true)
	if sendErr := sendReplies(c, replies); sendErr != nil && err == nil {
		err = sendErr
	}
	return err
}
