package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Market   MarketConfig
	Gemini   GeminiConfig
	Solana   SolanaConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig holds the external market data provider endpoints and the
// cron schedule for refreshing cached prices of tracked tokens.
type MarketConfig struct {
	DexScreenerURL  string
	RugCheckURL     string
	JupiterQuoteURL string
	RefreshSpec     string
}

// GeminiConfig holds the AI analysis configuration. The API key here is the
// environment fallback; a key stored through the settings endpoint takes
// precedence. FernetKey encrypts stored credentials at rest.
type GeminiConfig struct {
	APIKey    string
	Model     string
	FernetKey string
}

// SolanaConfig holds the RPC endpoint used for wallet balance lookups.
type SolanaConfig struct {
	RPCURL string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/terminal.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Market: MarketConfig{
			DexScreenerURL:  getEnv("DEXSCREENER_URL", "https://api.dexscreener.com/latest/dex"),
			RugCheckURL:     getEnv("RUGCHECK_URL", "https://api.rugcheck.xyz/v1"),
			JupiterQuoteURL: getEnv("JUPITER_QUOTE_URL", "https://quote-api.jup.ag/v6"),
			RefreshSpec:     getEnv("MARKET_REFRESH_SPEC", "@every 5m"),
		},
		Gemini: GeminiConfig{
			APIKey:    os.Getenv("GEMINI_API_KEY"),
			Model:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			FernetKey: os.Getenv("SETTINGS_FERNET_KEY"),
		},
		Solana: SolanaConfig{
			RPCURL: getEnv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
