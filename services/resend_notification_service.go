package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/sirupsen/logrus"
)

const resendEndpoint = "https://api.resend.com/emails"

// ErrMailDisabled is returned when no Resend API key or recipient is configured
var ErrMailDisabled = errors.New("mail notifications are not configured")

// ResendClient sends shop notifications through the Resend HTTP API
type ResendClient struct {
	apiKey     string
	from       string
	notifyTo   string
	endpoint   string
	httpClient *http.Client
	log        *logrus.Entry
}

func NewResendClient(cfg config.MailConfig) *ResendClient {
	return &ResendClient{
		apiKey:     cfg.ResendAPIKey,
		from:       cfg.From,
		notifyTo:   cfg.NotifyTo,
		endpoint:   resendEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logrus.WithField("component", "resend"),
	}
}

// Enabled reports whether notifications can be sent
func (r *ResendClient) Enabled() bool {
	return r.apiKey != "" && r.notifyTo != ""
}

// SendOrderNotification tells the shop manager about a new order
func (r *ResendClient) SendOrderNotification(ctx context.Context, order models.Order) error {
	var rows strings.Builder
	for _, item := range order.Items {
		subtotal := item.Price.Mul(decimalFromInt(item.Quantity))
		fmt.Fprintf(&rows, `
      <tr>
        <td style="padding: 6px 0;">%s</td>
        <td style="padding: 6px 0; text-align: right;">%d</td>
        <td style="padding: 6px 0; text-align: right;">%s</td>
        <td style="padding: 6px 0; text-align: right; font-weight: 600;">%s</td>
      </tr>`,
			html.EscapeString(item.ProductName), item.Quantity, formatRub(item.Price), formatRub(subtotal))
	}

	var body strings.Builder
	fmt.Fprintf(&body, `<!DOCTYPE html>
<html lang="ru">
<head><meta charset="UTF-8"><title>Новый заказ</title></head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #262622;">
  <h2>Новый заказ №%s</h2>
  <p><b>Клиент:</b> %s<br>
     <b>Телефон:</b> %s<br>
     <b>Email:</b> %s<br>
     <b>Адрес доставки:</b> %s<br>
     <b>Комментарий:</b> %s</p>
  <table width="100%%" cellpadding="0" cellspacing="0" border="0">
    <thead>
      <tr>
        <th style="text-align: left;">Товар</th>
        <th style="text-align: right;">Кол-во</th>
        <th style="text-align: right;">Цена</th>
        <th style="text-align: right;">Сумма</th>
      </tr>
    </thead>
    <tbody>%s
    </tbody>
  </table>
  <p style="font-size: 16px;"><b>Итого:</b> %s</p>
</body>
</html>`,
		order.ID.String(),
		html.EscapeString(order.CustomerName),
		html.EscapeString(order.CustomerPhone),
		orDash(order.CustomerEmail),
		orDash(order.DeliveryAddress),
		orDash(order.Comment),
		rows.String(),
		formatRub(order.TotalAmount),
	)

	subject := fmt.Sprintf("Новый заказ от %s", order.CustomerName)
	if err := r.send(ctx, subject, body.String()); err != nil {
		return err
	}
	r.log.WithField("order_id", order.ID).Info("order notification sent")
	return nil
}

// SendLeadNotification forwards a contact form submission
func (r *ResendClient) SendLeadNotification(ctx context.Context, lead models.LeadRequest) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html lang="ru">
<head><meta charset="UTF-8"><title>Новая заявка</title></head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #262622;">
  <h2>Новая заявка с сайта</h2>
  <p><b>Имя:</b> %s<br>
     <b>Телефон:</b> %s<br>
     <b>Email:</b> %s</p>
  <p><b>Сообщение:</b><br>%s</p>
</body>
</html>`,
		html.EscapeString(lead.Name),
		html.EscapeString(lead.Phone),
		orDash(lead.Email),
		orDash(lead.Message),
	)

	if err := r.send(ctx, "Новая заявка: "+lead.Name, body); err != nil {
		return err
	}
	r.log.Info("lead notification sent")
	return nil
}

func (r *ResendClient) send(ctx context.Context, subject, htmlBody string) error {
	if !r.Enabled() {
		return ErrMailDisabled
	}

	payload := map[string]interface{}{
		"from":    r.from,
		"to":      []string{r.notifyTo},
		"subject": subject,
		"html":    htmlBody,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.WithError(err).Error("failed to send request")
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		r.log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(respBody),
		}).Error("resend api returned an error")
		return fmt.Errorf("resend api error: status %d", resp.StatusCode)
	}
	return nil
}

func orDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "не указано"
	}
	return html.EscapeString(*s)
}

var resendClient *ResendClient

// GetResendClient returns the global notification client
func GetResendClient() *ResendClient {
	if resendClient == nil {
		resendClient = NewResendClient(config.App.Mail)
	}
	return resendClient
}

// SetResendClient replaces the global client (startup wiring and tests)
func SetResendClient(c *ResendClient) {
	resendClient = c
}
