package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/strct-org/strct-wlan/internal/wlan"
)

type Config struct {
	SSID      string
	Interface string
	Backend   string
	LogLevel  string
	APIPort   int
	IsDev     bool
}

// Load reads .env (if present) and the process environment. Flags parsed by
// the CLI are applied afterwards with Override.
func Load(devMode bool) *Config {
	if err := godotenv.Load(); err != nil {
		log.Debugln("[CONFIG] No .env file found, relying on system env vars")
	}

	cfg := &Config{
		IsDev:     devMode,
		SSID:      getEnv("WLAN_SSID", ""),
		Interface: getEnv("WLAN_INTERFACE", ""),
		Backend:   strings.ToLower(getEnv("WLAN_BACKEND", wlan.BackendAuto)),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		APIPort:   getEnvAsInt("API_PORT", 8080),
	}

	if cfg.IsDev {
		cfg.Backend = wlan.BackendMock
	}

	return cfg
}

// Override replaces fields with non-empty flag values.
func (c *Config) Override(ssid, iface, logLevel string) {
	if ssid != "" {
		c.SSID = ssid
	}
	if iface != "" {
		c.Interface = iface
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// ApplyLogLevel configures the global logger from LogLevel.
func (c *Config) ApplyLogLevel() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("[CONFIG] Invalid log level %q, using info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	val, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("[CONFIG] Warning: Invalid integer for %s, using default: %d", key, fallback)
		return fallback
	}
	return val
}
