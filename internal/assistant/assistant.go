// Package assistant relays visitor questions to a hosted language model.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 20 * time.Second

	// Apology is the reply whenever the model cannot be reached or answers
	// with an error.
	Apology = "Terjadi kesalahan pada server. Silakan coba lagi nanti."
	// EmptyReply is used when the model answers without any text.
	EmptyReply = "Maaf, saya tidak dapat memproses permintaan Anda saat ini."

	Greeting = "Halo! Saya VolleyBot Sulut. Ada yang bisa dibantu seputar bola voli di Sulawesi Utara?"

	temperature = 0.7
)

const defaultInstruction = `Anda adalah VolleyBot Sulut, asisten virtual PBVSI Provinsi Sulawesi Utara.
Jawab dalam Bahasa Indonesia yang sopan dan bersemangat tentang aturan bola voli,
kompetisi, klub, dan pembinaan atlet di Sulawesi Utara. Tolak dengan ramah
pertanyaan di luar topik bola voli atau Sulawesi Utara.`

type Sender string

const (
	SenderUser  Sender = "user"
	SenderModel Sender = "model"
)

type Message struct {
	ID     string    `json:"id"`
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

func NewMessage(sender Sender, text string) Message {
	return Message{ID: uuid.NewString(), Sender: sender, Text: text, At: time.Now()}
}

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Instruction string
	HTTPClient  *http.Client
}

type Client struct {
	cfg   Config
	genai *genai.Client
	log   *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Instruction == "" {
		cfg.Instruction = defaultInstruction
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{cfg: cfg, log: logger}
	if cfg.APIKey == "" {
		return c
	}
	gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		logger.Error("assistant client setup failed", "error", err)
		return c
	}
	c.genai = gc
	return c
}

// Enabled reports whether the model client is configured.
func (c *Client) Enabled() bool { return c.genai != nil }

// Reply sends the prior turns plus message in one request and returns the
// model's text. It never fails; errors are logged and answered with Apology.
func (c *Client) Reply(ctx context.Context, history []Message, message string) string {
	text, err := c.generate(ctx, history, message)
	if err != nil {
		c.log.Error("assistant request failed", "error", err)
		return Apology
	}
	if strings.TrimSpace(text) == "" {
		return EmptyReply
	}
	return text
}

var errNoAPIKey = errors.New("assistant API key is not configured")

func (c *Client) generate(ctx context.Context, history []Message, message string) (string, error) {
	if c.genai == nil {
		return "", errNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, genai.NewContentFromText(m.Text, genai.Role(m.Sender)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := c.genai.Models.GenerateContent(ctx, c.cfg.Model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(c.cfg.Instruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
