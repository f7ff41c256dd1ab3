package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the service needs.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Catalog CatalogConfig
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

	return &Config{
		Server:  server,
		AI:      ai,
		Catalog: CatalogConfig{Path: getEnvOrDefault("AUDIENCES_PATH", "audiences.json")},
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
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// CatalogConfig locates the static audience catalog file.
type CatalogConfig struct {
	Path string
}

// AIConfig carries model credentials plus the two call shapes the engine
// uses: high-variance persona replies and near-deterministic responder
// selection.
type AIConfig struct {
	APIKey    string
	AccessKey string
	SecretKey string
	Model     string
	BaseURL   string
	Region    string
	TopP      *float64

	ReplyTemperature  float64
	ReplyMaxTokens    int
	SelectTemperature float64
	SelectMaxTokens   int
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewReplyModel builds the chat model used for persona replies.
func (c AIConfig) NewReplyModel(ctx context.Context) (model.ChatModel, error) {
	return c.newChatModel(ctx, c.ReplyTemperature, c.ReplyMaxTokens)
}

// NewSelectionModel builds the chat model used for responder selection.
func (c AIConfig) NewSelectionModel(ctx context.Context) (model.ChatModel, error) {
	return c.newChatModel(ctx, c.SelectTemperature, c.SelectMaxTokens)
}

func (c AIConfig) newChatModel(ctx context.Context, temperature float64, maxTokens int) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: set ARK_API_KEY + ARK_MODEL, or the AK/SK pair")
	}

	temp := float32(temperature)

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temp,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	replyTemp, err := parseFloatEnv("ARK_REPLY_TEMPERATURE", 0.9)
	if err != nil {
		return AIConfig{}, err
	}

	selectTemp, err := parseFloatEnv("ARK_SELECT_TEMPERATURE", 0.2)
	if err != nil {
		return AIConfig{}, err
	}

	replyTokens, err := parseIntEnv("ARK_REPLY_MAX_TOKENS", 300)
	if err != nil {
		return AIConfig{}, err
	}

	selectTokens, err := parseIntEnv("ARK_SELECT_MAX_TOKENS", 200)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:            strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:         strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:         strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:             strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:           getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:            getEnvOrDefault("ARK_REGION", "cn-beijing"),
		TopP:              topP,
		ReplyTemperature:  replyTemp,
		ReplyMaxTokens:    replyTokens,
		SelectTemperature: selectTemp,
		SelectMaxTokens:   selectTokens,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
