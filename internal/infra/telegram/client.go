// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"strings"

	"kiosk_pickup_scheduler/internal/domain/collection"
	"kiosk_pickup_scheduler/internal/domain/notify"
	"kiosk_pickup_scheduler/internal/domain/partner"

	"gopkg.in/telebot.v3"
)

// TelebotNotifier implements notify.Notifier on top of gopkg.in/telebot.v3.
// Each partner has its own ops channel; profiles in the test environment are
// rerouted to the admin chat so no partner sees trial runs.
type TelebotNotifier struct {
	bot         *telebot.Bot
	adminChatID int64
}

var _ notify.Notifier = (*TelebotNotifier)(nil)

func NewTelebotNotifier(b *telebot.Bot, adminChatID int64) *TelebotNotifier {
	return &TelebotNotifier{bot: b, adminChatID: adminChatID}
}

// SendPickupRequests formats one batch into the partner request message and
// sends it to the partner's channel.
func (n *TelebotNotifier) SendPickupRequests(_ context.Context, profile *partner.Profile, batch collection.Batch) error {
	if len(batch.Requests) == 0 {
		return nil
	}

	chatID := n.targetChat(profile)
	text := FormatBatchMessage(profile, batch)
	_, err := n.bot.Send(&telebot.Chat{ID: chatID}, text, &telebot.SendOptions{ParseMode: telebot.ModeHTML})
	if err != nil {
		return fmt.Errorf("sending pickup request batch to chat %d: %w", chatID, err)
	}
	return nil
}

// targetChat resolves the destination channel: the partner's own chat only
// for live profiles with one configured, the admin chat otherwise.
func (n *TelebotNotifier) targetChat(profile *partner.Profile) int64 {
	if profile.Environment == partner.EnvironmentLive && profile.ChatID != 0 {
		return profile.ChatID
	}
	return n.adminChatID
}

// FormatBatchMessage renders the request body the couriers receive: subject,
// kiosk list in batch order, and the same-day note when a paired group is in
// the batch.
func FormatBatchMessage(profile *partner.Profile, batch collection.Batch) string {
	var b strings.Builder
	subject := batch.Requests[0].Subject
	fmt.Fprintf(&b, "<b>%s</b>\n\n", subject)
	b.WriteString("Hi All,\n\nGood day! Please schedule <b>collection</b> for the following stores:\n\n")
	for _, req := range batch.Requests {
		b.WriteString(req.DisplayName)
		b.WriteString("\n")
	}
	if pairPresent(profile, batch) {
		fmt.Fprintf(&b, "\nFor <b>%s</b>, kindly collect it on the same day.\n", strings.Join(profile.PairedKiosks, " and "))
	}
	b.WriteString("\n*** Please acknowledge this request. ***")
	return b.String()
}

func pairPresent(profile *partner.Profile, batch collection.Batch) bool {
	for _, req := range batch.Requests {
		if profile.IsPaired(req.Kiosk) {
			return true
		}
	}
	return false
}
