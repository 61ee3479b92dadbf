package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every subsystem's configuration.
type Config struct {
	Server  ServerConfig
	Sheets  SheetsConfig
	AI      AIConfig
	Chatbot ChatbotConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	chatbot, err := loadChatbotConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		Sheets:  loadSheetsConfig(),
		AI:      ai,
		Chatbot: chatbot,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// SheetsConfig describes access to the inventory spreadsheet.
type SheetsConfig struct {
	SpreadsheetID       string
	APIKey              string
	ServiceAccountEmail string
	PrivateKey          string
	ProjectID           string
}

// Enabled reports whether live spreadsheet access is configured at all.
// Without a credential the adapter serves the fixture dataset.
func (c SheetsConfig) Enabled() bool {
	return c.SpreadsheetID != "" && (c.APIKey != "" || c.HasServiceAccount())
}

// HasServiceAccount reports whether the service-account signing path is
// fully configured.
func (c SheetsConfig) HasServiceAccount() bool {
	return c.ServiceAccountEmail != "" && c.PrivateKey != "" && c.ProjectID != ""
}

func loadSheetsConfig() SheetsConfig {
	return SheetsConfig{
		SpreadsheetID:       strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_ID")),
		APIKey:              strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_API_KEY")),
		ServiceAccountEmail: strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL")),
		// Keys pasted into env files usually carry literal \n sequences.
		PrivateKey: strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n"),
		ProjectID:  strings.TrimSpace(os.Getenv("GOOGLE_PROJECT_ID")),
	}
}

// AIConfig describes the completion endpoint used by the assistant.
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
}

// Enabled reports whether the completion credential is present.
func (c AIConfig) Enabled() bool {
	return c.APIKey != "" && c.Model != ""
}

// NewChatModel creates a model instance for the configured endpoint.
// The endpoint speaks the OpenAI chat-completion wire format.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("completion credential missing: set DEEPSEEK_API_KEY and DEEPSEEK_MODEL")
	}

	maxTokens := c.MaxTokens
	temperature := c.Temperature

	cfg := &openai.ChatModelConfig{
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey,
		Model:       c.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	}

	return openai.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	maxTokens := 500
	if override, err := parseOptionalIntEnv("DEEPSEEK_MAX_TOKENS"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		maxTokens = *override
	}

	temperature := float32(0.7)
	if override, err := parseOptionalFloat32Env("DEEPSEEK_TEMPERATURE"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		temperature = *override
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY")),
		BaseURL:     getEnvOrDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1"),
		Model:       getEnvOrDefault("DEEPSEEK_MODEL", "deepseek-chat"),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}, nil
}

// ChatbotConfig describes the legacy chatbot backend.
type ChatbotConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Enabled reports whether the legacy backend integration is configured.
func (c ChatbotConfig) Enabled() bool {
	return c.BaseURL != "" && c.APIKey != ""
}

func loadChatbotConfig() (ChatbotConfig, error) {
	timeout := 10 * time.Second
	if override, err := parseOptionalIntEnv("CHATBOT_API_TIMEOUT"); err != nil {
		return ChatbotConfig{}, err
	} else if override != nil {
		timeout = time.Duration(*override) * time.Second
	}

	return ChatbotConfig{
		BaseURL: getEnvOrDefault("CHATBOT_API_URL", "https://api.centralaluminiosdelvalle.com"),
		APIKey:  strings.TrimSpace(os.Getenv("CHATBOT_API_KEY")),
		Timeout: timeout,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}
