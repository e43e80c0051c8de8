package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/infra"

	"github.com/rs/zerolog/log"
)

// Sender delivers a plain-text mail. *infra.Mailer implements it.
type Sender interface {
	Send(to []string, subject, body string) error
}

// AlertWorker turns low stock jobs into mail to the configured recipients.
// Sends go through a circuit breaker so a dead relay fails jobs fast.
type AlertWorker struct {
	sender     Sender
	recipients []string
	breaker    *infra.CircuitBreaker
}

func NewAlertWorker(sender Sender, recipients []string, breaker *infra.CircuitBreaker) *AlertWorker {
	if breaker == nil {
		breaker = infra.NewCircuitBreaker(infra.DefaultCBConfig())
	}
	return &AlertWorker{sender: sender, recipients: recipients, breaker: breaker}
}

// Process returns an error when the mail could not be sent; malformed
// payloads are dropped since retrying cannot fix them.
func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var alert dto.LowStockAlert
	if err := json.Unmarshal(raw, &alert); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return nil
	}
	if len(w.recipients) == 0 {
		log.Warn().Str("product_id", alert.ProductID).Msg("alert_worker: no recipients, skipping")
		return nil
	}

	subject, body := composeAlert(alert)
	err := w.breaker.Execute(func() error {
		return w.sender.Send(w.recipients, subject, body)
	})
	if err != nil {
		return fmt.Errorf("alert_worker: %w", err)
	}
	log.Info().
		Str("product_id", alert.ProductID).
		Str("status", alert.Status).
		Int("recipients", len(w.recipients)).
		Msg("alert_worker: low stock alert sent")
	return nil
}

func composeAlert(a dto.LowStockAlert) (subject, body string) {
	subject = fmt.Sprintf("[Inventory] %s: %s", a.Status, a.ProductName)

	var b strings.Builder
	fmt.Fprintf(&b, "%s is now %s.\n\n", a.ProductName, strings.ToLower(a.Status))
	fmt.Fprintf(&b, "Units on hand: %d\n", a.StockQty)
	fmt.Fprintf(&b, "Triggered by: %s\n", a.Cause)
	fmt.Fprintf(&b, "Product ID: %s\n", a.ProductID)
	return subject, b.String()
}
