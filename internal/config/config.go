package config

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultFeeds is the source set used until the user edits feeds.txt.
var DefaultFeeds = []string{
	"https://news.ycombinator.com/rss",
	"https://feeds.arstechnica.com/arstechnica/index",
	"https://www.techradar.com/feeds/news",
	"https://feeds.bloomberg.com/markets/news.rss",
	"https://feeds.theverge.com/theverge/index.xml",
	"https://dev.to/feed",
	"https://rss.nytimes.com/services/xml/rss/nyt/Technology.xml",
}

// DefaultKeywords seeds keywords.txt on first run.
var DefaultKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "deep learning", "neural",
	"algorithm", "computer science", "programming", "software", "developer",
	"coding", "python", "rust", "golang", "linux", "kernel", "cybersecurity",
	"hacker", "data science", "llm", "gpt", "transformer", "compiler",
	"distributed system", "cloud computing", "aws", "azure", "google cloud",
}

// Settings holds the tunables from config.json.
type Settings struct {
	CacheTTLSeconds    int `json:"cache_ttl_seconds"`
	DefaultLimit       int `json:"default_limit"`
	HTTPTimeoutSeconds int `json:"http_timeout_seconds"`
}

func DefaultSettings() Settings {
	return Settings{
		CacheTTLSeconds:    3600,
		DefaultLimit:       4,
		HTTPTimeoutSeconds: 10,
	}
}

// Validate rejects settings no run could work with.
func (s *Settings) Validate() error {
	if s.CacheTTLSeconds < 0 {
		return errors.New("cache_ttl_seconds must be >= 0")
	}
	if s.DefaultLimit <= 0 {
		return errors.New("default_limit must be > 0")
	}
	if s.HTTPTimeoutSeconds <= 0 {
		return errors.New("http_timeout_seconds must be > 0")
	}
	return nil
}

func (s Settings) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

func (s Settings) HTTPTimeout() time.Duration {
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}

// Config is the loaded on-disk state for one run.
type Config struct {
	DataDir  string
	Feeds    []string
	Keywords []string
	Settings Settings
}

// CacheDir is where per-source cache files live.
func (c *Config) CacheDir() string {
	return filepath.Join(c.DataDir, "cache")
}

// DefaultDataDir returns ~/.csnews, creating it if needed.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error finding home directory: %w", err)
	}
	dataDir := filepath.Join(homeDir, ".csnews")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("error creating data directory: %w", err)
	}
	return dataDir, nil
}

// Load reads feeds, keywords and settings from dataDir, writing default
// files for anything missing so the first run works out of the box.
func Load(dataDir string) (*Config, error) {
	feeds, err := loadOrCreateList(filepath.Join(dataDir, "feeds.txt"), feedsHeader, DefaultFeeds)
	if err != nil {
		return nil, fmt.Errorf("error loading feeds: %w", err)
	}
	if err := validateFeeds(feeds); err != nil {
		return nil, err
	}

	keywords, err := loadOrCreateList(filepath.Join(dataDir, "keywords.txt"), keywordsHeader, DefaultKeywords)
	if err != nil {
		return nil, fmt.Errorf("error loading keywords: %w", err)
	}

	settings, err := loadOrCreateSettings(filepath.Join(dataDir, "config.json"))
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config.json: %w", err)
	}

	return &Config{
		DataDir:  dataDir,
		Feeds:    feeds,
		Keywords: keywords,
		Settings: settings,
	}, nil
}

const feedsHeader = "# Feed URLs (one per line)\n" +
	"# Lines starting with # are comments\n\n"

const keywordsHeader = "# Keywords used to filter news items (one per line)\n" +
	"# Matching is case-insensitive on whole words\n\n"

func validateFeeds(feeds []string) error {
	for _, u := range feeds {
		if _, err := url.ParseRequestURI(u); err != nil || !strings.HasPrefix(u, "http") {
			return fmt.Errorf("invalid feed URL: %s", u)
		}
	}
	return nil
}

func loadOrCreateList(path, header string, defaults []string) ([]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := saveList(path, header, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			entries = append(entries, line)
		}
	}
	return entries, scanner.Err()
}

func saveList(path, header string, entries []string) error {
	content := header
	for _, entry := range entries {
		content += entry + "\n"
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func loadOrCreateSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return settings, fmt.Errorf("error marshaling settings: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return settings, fmt.Errorf("error writing default settings: %w", err)
		}
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("error reading settings: %w", err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("error parsing settings: %w", err)
	}
	return settings, nil
}
