// Package whatsapp is the outbound client for the WhatsApp messaging
// gateway: text, image, document, and audio sends keyed by recipient phone
// number. The gateway reports failures inside a {"error": true} envelope even
// on HTTP 200, so the envelope is checked on every send.
package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storeops/chatbridge"
)

// ProviderName is the registration key on the Bridge.
const ProviderName = "whatsapp"

// ErrInvalidPhone rejects sends before any network call.
var ErrInvalidPhone = errors.New("recipient phone number has no digits")

// countryPrefix is prepended to numbers sent without one.
const countryPrefix = "55"

type Config struct {
	// MessageDelay is the pause after each successful send, keeping the
	// gateway from flagging the account for burst sending.
	MessageDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.MessageDelay <= 0 {
		c.MessageDelay = 3 * time.Second
	}
	return c
}

type Client struct {
	bridge *chatbridge.Bridge
	cfg    Config
	log    zerolog.Logger
}

func NewClient(bridge *chatbridge.Bridge, cfg Config, log zerolog.Logger) *Client {
	return &Client{
		bridge: bridge,
		cfg:    cfg.withDefaults(),
		log:    log.With().Str("client", ProviderName).Logger(),
	}
}

type sendResult struct {
	Error     bool   `json:"error"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

// SendText delivers a plain text message.
func (c *Client) SendText(ctx context.Context, phone, text string) error {
	return c.send(ctx, "/message/send-text", map[string]string{
		"text": text,
	}, phone)
}

// SendImage delivers an image by URL with an optional caption.
func (c *Client) SendImage(ctx context.Context, phone, imageURL, caption string) error {
	return c.send(ctx, "/message/send-image", map[string]string{
		"image":   imageURL,
		"caption": caption,
	}, phone)
}

// SendDocument delivers a document by URL.
func (c *Client) SendDocument(ctx context.Context, phone, documentURL, fileName string) error {
	return c.send(ctx, "/message/send-document", map[string]string{
		"document": documentURL,
		"fileName": fileName,
	}, phone)
}

// SendAudio delivers an audio file by URL.
func (c *Client) SendAudio(ctx context.Context, phone, audioURL string) error {
	return c.send(ctx, "/message/send-audio", map[string]string{
		"audio": audioURL,
	}, phone)
}

func (c *Client) send(ctx context.Context, endpoint string, fields map[string]string, phone string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}

	payload := map[string]string{
		"phoneNumber":  normalized,
		"delayMessage": "3",
	}
	for k, v := range fields {
		payload[k] = v
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := c.bridge.Do(ctx, ProviderName, &chatbridge.Request{
		Method:   http.MethodPost,
		Endpoint: endpoint,
		Body:     body,
	})
	if err != nil {
		return err
	}

	var result sendResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("%w: %v", chatbridge.ErrMalformedResponse, err)
	}
	if result.Error {
		return fmt.Errorf("gateway rejected message: %s", result.Message)
	}

	c.log.Debug().Str("to", normalized).Str("message_id", result.MessageID).Str("endpoint", endpoint).Msg("message sent")
	return sleepCtx(ctx, c.cfg.MessageDelay)
}

// NormalizePhone strips everything but digits and prepends the Brazilian
// country code when missing.
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", ErrInvalidPhone
	}
	if !strings.HasPrefix(digits, countryPrefix) {
		digits = countryPrefix + digits
	}
	return digits, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
