// Package telegram adapts the Telegram Bot API to the dialog engine: inbound
// updates become engine events, outbound prompts become messages with inline
// keyboards.
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/dialog"
)

const pollTimeoutSeconds = 30

// Transport wraps the bot client. It is the dialog.Messenger implementation
// used in production.
type Transport struct {
	bot    *tgbotapi.BotAPI
	logger *zap.Logger
}

// New authorizes against the Bot API with the given token.
func New(token string, logger *zap.Logger) (*Transport, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authorizing bot: %w", err)
	}

	logger.Info("bot authorized", zap.String("username", bot.Self.UserName))

	return &Transport{bot: bot, logger: logger}, nil
}

// Run long-polls for updates and feeds them to the engine until the context
// is canceled. Handler errors are logged and the loop continues: one failed
// request must not take the bot down.
func (t *Transport) Run(ctx context.Context, engine *dialog.Engine) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds

	updates := t.bot.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := t.dispatch(engine, update); err != nil {
				t.logger.Error("handling update", zap.Error(err))
			}
		}
	}
}

func (t *Transport) dispatch(engine *dialog.Engine, update tgbotapi.Update) error {
	if cq := update.CallbackQuery; cq != nil {
		// Ack first so the client stops showing the spinner even when the
		// button leads nowhere.
		if _, err := t.bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			t.logger.Warn("acking callback", zap.Error(err))
		}
		return engine.HandleButton(cq.From.ID, cq.Data)
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		if msg.Command() == "start" {
			return engine.HandleStart(msg.Chat.ID, displayName(msg.From), msg.From.UserName)
		}
		return engine.HandleCommand(msg.Chat.ID, msg.Command(), strings.Fields(msg.CommandArguments()))
	}

	return engine.HandleText(msg.Chat.ID, msg.Text)
}

func displayName(user *tgbotapi.User) string {
	if user.LastName == "" {
		return user.FirstName
	}
	return user.FirstName + " " + user.LastName
}

// SendText implements dialog.Messenger.
func (t *Transport) SendText(id int64, text string) error {
	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("sending message to %d: %w", id, err)
	}
	return nil
}

// SendChoice implements dialog.Messenger: one row of inline buttons.
func (t *Transport) SendChoice(id int64, text string, choices []dialog.Choice) error {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, c := range choices {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(c.Label, c.Token))
	}

	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("sending choice to %d: %w", id, err)
	}
	return nil
}

// SendDocument implements dialog.Messenger.
func (t *Transport) SendDocument(id int64, path, caption string) error {
	doc := tgbotapi.NewDocument(id, tgbotapi.FilePath(path))
	doc.Caption = caption

	if _, err := t.bot.Send(doc); err != nil {
		return fmt.Errorf("sending document to %d: %w", id, err)
	}
	return nil
}
