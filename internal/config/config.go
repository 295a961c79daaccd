package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Person is the display name used in prompts and answers.
	Person string `toml:"person"`

	// Sources and Socials are ordered: declaration order is catalog order,
	// which also drives ranking tie-breaks and search iteration.
	Sources  []Source  `toml:"source"`
	Socials  []Social  `toml:"social"`
	Triggers []Trigger `toml:"trigger"`

	Server   ServerConfig   `toml:"server"`
	Backends BackendsConfig `toml:"backends"`
	DB       DBConfig       `toml:"db"`
	Trace    TraceConfig    `toml:"trace"`

	Secrets Secrets `toml:"-"`
}

// Source is one informational profile page.
type Source struct {
	Name  string `toml:"name"`
	Title string `toml:"title"`
	URL   string `toml:"url"`
}

type Social struct {
	Platform string `toml:"platform"`
	URL      string `toml:"url"`
}

// Trigger maps a tool to the keywords that make it relevant to a query.
type Trigger struct {
	Tool     string   `toml:"tool"`
	Keywords []string `toml:"keywords"`
}

type ServerConfig struct {
	Addr                string `toml:"addr"`
	FetchTimeoutSeconds int    `toml:"fetch_timeout_seconds"`
}

type BackendsConfig struct {
	TimeoutSeconds int               `toml:"timeout_seconds"`
	Ollama         OllamaConfig      `toml:"ollama"`
	OpenAI         OpenAIConfig      `toml:"openai"`
	HuggingFace    HuggingFaceConfig `toml:"huggingface"`
}

type OllamaConfig struct {
	URL   string `toml:"url"`
	Model string `toml:"model"`
}

type OpenAIConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type HuggingFaceConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

type DBConfig struct {
	Path string `toml:"path"`
}

type TraceConfig struct {
	Endpoint string `toml:"endpoint"`
	URLPath  string `toml:"url_path"`
	APIKey   string `toml:"api_key"`
}

// Secrets are environment-only overrides so tokens stay out of the
// config file.
type Secrets struct {
	HFToken      string `env:"VITA_HF_TOKEN"`
	OpenAIAPIKey string `env:"VITA_OPENAI_API_KEY"`
	BraveAPIKey  string `env:"VITA_BRAVE_API_KEY"`
}

func Load() (*Config, error) {
	cfg := defaults()

	path := configPath()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg.Secrets); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.Secrets.HFToken != "" {
		cfg.Backends.HuggingFace.Token = cfg.Secrets.HFToken
	}
	if cfg.Secrets.OpenAIAPIKey != "" {
		cfg.Backends.OpenAI.APIKey = cfg.Secrets.OpenAIAPIKey
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Person: "Haris Gulzar",
		Sources: []Source{
			{Name: "overview", Title: "Profile Overview", URL: "https://sites.google.com/view/haris-gulzar/home"},
			{Name: "experience", Title: "Work Experience", URL: "https://sites.google.com/view/haris-gulzar/experience"},
			{Name: "publications", Title: "Publications and Conferences", URL: "https://sites.google.com/view/haris-gulzar/publications"},
			{Name: "career_timeline", Title: "Career Timeline", URL: "https://sites.google.com/view/haris-gulzar/career-timeline"},
		},
		Socials: []Social{
			{Platform: "linkedin", URL: "https://www.linkedin.com/in/haris-gulzar/"},
			{Platform: "instagram", URL: "https://www.instagram.com/japanviaharis/"},
			{Platform: "facebook", URL: "https://www.facebook.com/mharisgulzar/"},
			{Platform: "youtube", URL: "https://www.youtube.com/@japanviaharis"},
		},
		Triggers: []Trigger{
			{Tool: "get_profile_overview", Keywords: []string{"overview", "about", "background", "who is", "introduction"}},
			{Tool: "get_experience", Keywords: []string{"experience", "work", "job", "career", "professional", "employment"}},
			{Tool: "get_publications", Keywords: []string{"publication", "paper", "research", "conference", "academic"}},
			{Tool: "get_career_timeline", Keywords: []string{"timeline", "history", "when", "career path", "progression"}},
			{Tool: "get_social_links", Keywords: []string{"social", "linkedin", "instagram", "facebook", "youtube", "contact"}},
		},
		Server: ServerConfig{
			Addr:                ":8486",
			FetchTimeoutSeconds: 30,
		},
		Backends: BackendsConfig{
			TimeoutSeconds: 60,
			Ollama: OllamaConfig{
				URL:   "http://localhost:11434",
				Model: "llama2",
			},
			HuggingFace: HuggingFaceConfig{
				URL: "https://api-inference.huggingface.co/models/microsoft/DialoGPT-large",
			},
		},
		DB: DBConfig{
			Path: defaultDBPath(),
		},
	}
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Server.FetchTimeoutSeconds) * time.Second
}

func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backends.TimeoutSeconds) * time.Second
}

// SourceByName returns the configured source with the given name.
func (c *Config) SourceByName(name string) (Source, bool) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

func configPath() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, "vita", "config.toml")
}

func defaultDBPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, ".local", "share", "vita", "vita.db")
}
