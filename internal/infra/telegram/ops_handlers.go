// internal/infra/telegram/ops_handlers.go
package telegram

import (
	"context"
	"fmt"
	"strings"

	"kiosk_pickup_scheduler/internal/app"
	"kiosk_pickup_scheduler/internal/domain/collection"
	"kiosk_pickup_scheduler/internal/domain/partner"
	"kiosk_pickup_scheduler/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RequestStatusLister looks up open pickup requests for specific kiosks.
type RequestStatusLister interface {
	ListByNames(ctx context.Context, serviceBank string, names []string) ([]*collection.PickupRequest, error)
}

// RegisterOpsHandlers wires the operator commands. Everything here is
// restricted to the admin chat; the bot is otherwise silent.
func RegisterOpsHandlers(
	ctx context.Context,
	b *telebot.Bot,
	cfg *config.AppConfig,
	collectionService app.CollectionService,
	resetService *app.ResetService,
	statusLister RequestStatusLister,
	registry *partner.Registry,
	baseLogger *logrus.Entry,
) {
	opsLogger := baseLogger.WithField("handler_group", "ops")

	isAdmin := func(c telebot.Context) bool {
		return c.Sender() != nil && c.Sender().ID == cfg.AdminChatID
	}

	b.Handle("/start", func(c telebot.Context) error {
		if !isAdmin(c) {
			return c.Send("This bot serves the collection scheduling team only.")
		}
		return c.Send("Pickup scheduler is running. Use /help for commands.")
	})

	b.Handle("/help", func(c telebot.Context) error {
		if !isAdmin(c) {
			return c.Send("This bot serves the collection scheduling team only.")
		}
		var helpText strings.Builder
		helpText.WriteString("Available commands:\n\n")
		helpText.WriteString("`/run <partner>` - Run the scheduling pipeline for one partner now.\n\n")
		helpText.WriteString("`/run all` - Run the pipeline for every partner.\n\n")
		helpText.WriteString("`/reset` - Clear expired scheduling remarks and close stale requests.\n\n")
		helpText.WriteString("`/status <partner>: <kiosk>, <kiosk>` - Show open requests for specific kiosks.\n\n")
		helpText.WriteString("`/partners` - List registered partners.\n\n")
		helpText.WriteString("`/help` - Show this message.")
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/partners", func(c telebot.Context) error {
		if !isAdmin(c) {
			return nil
		}
		return c.Send("Registered partners: " + strings.Join(registry.ServiceBanks(), ", "))
	})

	b.Handle("/run", func(c telebot.Context) error {
		if !isAdmin(c) {
			return nil
		}
		logCtx := opsLogger.WithField("command", "/run").WithField("sender_id", c.Sender().ID)

		target := strings.TrimSpace(c.Message().Payload)
		if target == "" {
			return c.Send("Usage: /run <partner>|all")
		}

		if strings.EqualFold(target, "all") {
			logCtx.Info("Manual scheduling run for all partners requested.")
			if err := collectionService.RunAll(ctx); err != nil {
				logCtx.WithError(err).Error("Manual run failed.")
				return c.Send(fmt.Sprintf("Run finished with errors: %v", err))
			}
			return c.Send("Scheduling run finished for all partners.")
		}

		if _, err := registry.Get(target); err != nil {
			return c.Send(fmt.Sprintf("Unknown partner %q. Use /partners to list them.", target))
		}
		logCtx.WithField("partner", target).Info("Manual scheduling run requested.")
		batches, err := collectionService.RunPartner(ctx, target)
		if err != nil {
			logCtx.WithError(err).Error("Manual partner run failed.")
			return c.Send(fmt.Sprintf("Run for %s failed: %v", target, err))
		}
		total := 0
		for _, batch := range batches {
			total += len(batch.Requests)
		}
		return c.Send(fmt.Sprintf("Run for %s finished: %d request(s) in %d batch(es).", target, total, len(batches)))
	})

	b.Handle("/status", func(c telebot.Context) error {
		if !isAdmin(c) {
			return nil
		}
		// Partner names contain spaces, so the partner and the kiosk list are
		// separated by a colon: /status Brinks via BPI: PLDT CEBU, SMART DAVAO
		parts := strings.SplitN(c.Message().Payload, ":", 2)
		if len(parts) != 2 {
			return c.Send("Usage: /status <partner>: <kiosk>, <kiosk>")
		}
		target := strings.TrimSpace(parts[0])
		if _, err := registry.Get(target); err != nil {
			return c.Send(fmt.Sprintf("Unknown partner %q. Use /partners to list them.", target))
		}
		var names []string
		for _, name := range strings.Split(parts[1], ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return c.Send("Usage: /status <partner>: <kiosk>, <kiosk>")
		}

		requests, err := statusLister.ListByNames(ctx, target, names)
		if err != nil {
			opsLogger.WithField("command", "/status").WithError(err).Error("Status lookup failed.")
			return c.Send(fmt.Sprintf("Status lookup failed: %v", err))
		}
		if len(requests) == 0 {
			return c.Send("No open requests for those kiosks.")
		}
		var reply strings.Builder
		reply.WriteString("Open requests:\n")
		for _, req := range requests {
			fmt.Fprintf(&reply, "%s - %.2f (%s)\n", req.Kiosk, req.Amount, req.Subject)
		}
		return c.Send(reply.String())
	})

	b.Handle("/reset", func(c telebot.Context) error {
		if !isAdmin(c) {
			return nil
		}
		logCtx := opsLogger.WithField("command", "/reset").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Manual remark reset requested.")
		if err := resetService.Run(ctx); err != nil {
			logCtx.WithError(err).Error("Manual reset failed.")
			return c.Send(fmt.Sprintf("Reset failed: %v", err))
		}
		return c.Send("Expired remarks cleared and stale requests closed.")
	})
}
