package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/aved-sa/aved-web/internal/contact"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramService alerts the sales team about new inquiries in a Telegram chat
type TelegramService struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

// NewTelegramService creates a new Telegram service. It is disabled when the
// bot token or chat id is empty.
func NewTelegramService(botToken, chatID string) *TelegramService {
	return &TelegramService{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  telegramAPIBase,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether both the bot token and the chat id are configured
func (s *TelegramService) Enabled() bool {
	return s != nil && s.botToken != "" && s.chatID != ""
}

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// NotifyLead posts a summary of an accepted inquiry. It is a no-op when the
// service is disabled.
func (s *TelegramService) NotifyLead(ctx context.Context, req contact.Request) error {
	if !s.Enabled() {
		return nil
	}

	payload := telegramMessage{
		ChatID:    s.chatID,
		Text:      formatLead(req),
		ParseMode: "HTML",
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		// The URL carries the bot token
		return fmt.Errorf("failed to send telegram message: %T", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}
	return nil
}

func formatLead(req contact.Request) string {
	var b strings.Builder
	b.WriteString("<b>New inquiry</b>\n\n")
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "<b>%s:</b> %s\n", label, html.EscapeString(value))
		}
	}
	line("Name", req.Name)
	line("Email", req.Email)
	line("Phone", req.Phone)
	line("Property", req.PropertyName)
	line("Type", req.PropertyType)
	line("Unit", req.UnitNumber)
	line("Floor", req.FloorNumber)
	fmt.Fprintf(&b, "\n%s", html.EscapeString(req.Message))
	return b.String()
}
