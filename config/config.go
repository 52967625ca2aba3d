package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the resolver configuration.
// Host lists are loaded here once and injected into the adapters at
// construction; nothing reads them from ambient state afterwards.
type Config struct {
	PipedHosts       []string // ordered mirror list, first entry is the primary
	PipedMirrorsFile string   // optional newline-delimited mirror list file
	BilibiliAPIURL   string
	HTTPTimeout      time.Duration
	ServerPort       string
	LogLevel         string
	LogPath          string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// Attempt to load .env file. godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	cfg := &Config{
		PipedMirrorsFile: getEnv("PIPED_MIRRORS_FILE", ""),
		BilibiliAPIURL:   getEnv("BILIBILI_API_URL", ""),
		HTTPTimeout:      time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		ServerPort:       getEnv("SERVER_PORT", "8090"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPath:          getEnv("LOG_PATH", ""),
	}

	if hosts := getEnv("PIPED_API_HOSTS", ""); hosts != "" {
		cfg.PipedHosts = splitHosts(hosts)
	}

	// A mirrors file takes precedence over the inline list.
	if cfg.PipedMirrorsFile != "" {
		if fromFile, err := LoadMirrorsFile(cfg.PipedMirrorsFile); err != nil {
			log.Printf("Failed to read mirrors file %s: %v", cfg.PipedMirrorsFile, err)
		} else if len(fromFile) > 0 {
			cfg.PipedHosts = fromFile
		}
	}

	return cfg
}

// LoadMirrorsFile reads a newline-delimited mirror list.
// Blank lines and lines starting with '#' are skipped.
func LoadMirrorsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var hosts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, strings.TrimRight(line, "/"))
	}
	return hosts, scanner.Err()
}

func splitHosts(raw string) []string {
	var hosts []string
	for _, h := range strings.Split(raw, ",") {
		h = strings.TrimSpace(h)
		if h != "" {
			hosts = append(hosts, strings.TrimRight(h, "/"))
		}
	}
	return hosts
}
