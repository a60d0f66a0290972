// Package telegram delivers order offers to the drivers chat via the
// Telegram Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/ports"

	tele "gopkg.in/telebot.v3"
)

// ErrSenderIsRequired happens when a gateway is created without a sender.
var ErrSenderIsRequired = errors.New("sender is required")

// ErrChatIDIsRequired happens when a gateway is created without a chat id.
var ErrChatIDIsRequired = errors.New("chat id is required")

// Sender is the slice of the Telegram bot the gateway needs. *tele.Bot
// satisfies it.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

var _ ports.BroadcastGateway = &BroadcastGateway{}

// BroadcastGateway posts order offers to the drivers group chat.
// A nil error from Broadcast means the Bot API accepted the message.
type BroadcastGateway struct {
	sender Sender
	chatID int64
}

// NewBroadcastGateway creates a gateway that posts to the given chat.
func NewBroadcastGateway(sender Sender, chatID int64) (*BroadcastGateway, error) {
	if sender == nil {
		return nil, ErrSenderIsRequired
	}
	if chatID == 0 {
		return nil, ErrChatIDIsRequired
	}
	return &BroadcastGateway{sender: sender, chatID: chatID}, nil
}

// Broadcast posts a formatted offer with an accept button to the drivers chat.
func (g *BroadcastGateway) Broadcast(
	ctx context.Context, orderID kernel.UUID, origin, destination, comment string,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text := fmt.Sprintf(
		"🚖 <b>Новый заказ!</b>\n\n📍 <b>Откуда:</b> %s\n📍 <b>Куда:</b> %s\n",
		origin, destination,
	)
	if comment != "" {
		text += fmt.Sprintf("💬 <b>Комментарий:</b> %s\n", comment)
	}
	text += fmt.Sprintf("\n🆔 Заказ: <code>%s</code>", orderID.String()[:8])

	markup := &tele.ReplyMarkup{}
	accept := markup.Data("✅ Принять заказ", "accept_order", orderID.String())
	markup.Inline(markup.Row(accept))

	if _, err := g.sender.Send(tele.ChatID(g.chatID), text, markup, tele.ModeHTML); err != nil {
		return fmt.Errorf("broadcast order %s: %w", orderID, err)
	}
	return nil
}
