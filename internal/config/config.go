package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	wikiruComic = "https://bluearchive.wikiru.jp/?Twitter%E9%80%A3%E8%BC%89/%E3%81%B6%E3%82%8B%E3%83%BC%E3%81%82%E3%83%BC%E3%81%8B%E3%81%84%E3%81%B6%E3%81%A3%EF%BC%81/"

	DefaultBaseURL         = "https://bluearchive.wikiru.jp/"
	DefaultJaURL           = wikiruComic + "001%EF%BD%9E010%E8%A9%B1"
	DefaultDeletedURL      = wikiruComic + "041%EF%BD%9E050%E8%A9%B1"
	DefaultEnURL           = "https://bluearchive.wikiru.jp/?Twitter%E9%80%A3%E8%BC%89/English/001%EF%BD%9E010"
	DefaultAoharuURL       = "https://bluearchive.wikiru.jp/?%E3%82%A2%E3%82%AA%E3%83%8F%E3%83%AB%E8%A8%98%E9%8C%B2"
	DefaultCharactersURL   = "https://bluearchive.wiki/wiki/Characters"
	DefaultJaCharactersURL = "https://bluearchive.wikiru.jp/?%E3%82%AD%E3%83%A3%E3%83%A9%E3%82%AF%E3%82%BF%E3%83%BC%E4%B8%80%E8%A6%A7"
	DefaultNPCURL          = "https://bluearchive.fandom.com/wiki/Category:NPC"
)

// URLs are the start pages of every source.
type URLs struct {
	Base         string `yaml:"base"`
	Ja           string `yaml:"ja"`
	En           string `yaml:"en"`
	Aoharu       string `yaml:"aoharu"`
	Deleted      string `yaml:"deleted"`
	Characters   string `yaml:"characters"`
	JaCharacters string `yaml:"ja_characters"`
	NPC          string `yaml:"npc"`
}

type Config struct {
	Output string `yaml:"output"`
	Debug  bool   `yaml:"debug"`

	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"timeout"`
	PageDelay   time.Duration `yaml:"page_delay"`
	RosterDelay time.Duration `yaml:"roster_delay"`

	SkipMissingSlots bool `yaml:"skip_missing_slots"`

	URLs URLs `yaml:"urls"`
}

// Options are command line values; zero values leave the config untouched.
type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Output           string
	UserAgent        string
	PageDelay        time.Duration
	RosterDelay      time.Duration
	SkipMissingSlots bool
}

func DefaultConfig() *Config {
	return &Config{
		Output:      "out",
		Timeout:     30 * time.Second,
		PageDelay:   time.Second,
		RosterDelay: 5 * time.Second,
		URLs:        defaultURLs(),
	}
}

func defaultURLs() URLs {
	return URLs{
		Base:         DefaultBaseURL,
		Ja:           DefaultJaURL,
		En:           DefaultEnURL,
		Aoharu:       DefaultAoharuURL,
		Deleted:      DefaultDeletedURL,
		Characters:   DefaultCharactersURL,
		JaCharacters: DefaultJaCharactersURL,
		NPC:          DefaultNPCURL,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `bascrape config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("config %s: %w", activePath, err)
	}

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.PageDelay != 0 {
		c.PageDelay = o.PageDelay
	}
	if o.RosterDelay != 0 {
		c.RosterDelay = o.RosterDelay
	}
	if o.SkipMissingSlots {
		c.SkipMissingSlots = true
	}
}

// normalizeDefaults fills the fields an older or hand-written profile left
// empty. Delays may be negative to disable them.
func normalizeDefaults(c *Config) {
	def := DefaultConfig()

	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Timeout == 0 {
		c.Timeout = def.Timeout
	}
	if c.PageDelay == 0 {
		c.PageDelay = def.PageDelay
	}
	if c.RosterDelay == 0 {
		c.RosterDelay = def.RosterDelay
	}

	u := &c.URLs
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&u.Base, def.URLs.Base)
	fill(&u.Ja, def.URLs.Ja)
	fill(&u.En, def.URLs.En)
	fill(&u.Aoharu, def.URLs.Aoharu)
	fill(&u.Deleted, def.URLs.Deleted)
	fill(&u.Characters, def.URLs.Characters)
	fill(&u.JaCharacters, def.URLs.JaCharacters)
	fill(&u.NPC, def.URLs.NPC)
}

// Validate checks that every start page is an absolute http(s) URL and
// that the English listing is recognizable as English.
func (c *Config) Validate() error {
	var errs []error
	for _, f := range []struct{ name, raw string }{
		{"base", c.URLs.Base},
		{"ja", c.URLs.Ja},
		{"en", c.URLs.En},
		{"aoharu", c.URLs.Aoharu},
		{"deleted", c.URLs.Deleted},
		{"characters", c.URLs.Characters},
		{"ja_characters", c.URLs.JaCharacters},
		{"npc", c.URLs.NPC},
	} {
		name, raw := f.name, f.raw
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("urls.%s: not an absolute http(s) url: %q", name, raw))
		}
	}

	// the English title rules are picked from the listing url
	if !strings.Contains(c.URLs.En, "English") {
		errs = append(errs, fmt.Errorf("urls.en: must point at the English listing: %q", c.URLs.En))
	}

	return errors.Join(errs...)
}

func (c *Config) Print() {
	fmt.Printf(" -output: %s\n", c.Output)
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	fmt.Printf(" -timeout: %s\n", c.Timeout)
	fmt.Printf(" -page_delay: %s\n", c.PageDelay)
	fmt.Printf(" -roster_delay: %s\n", c.RosterDelay)
	if c.SkipMissingSlots {
		fmt.Printf(" -skip_missing_slots: %t\n", c.SkipMissingSlots)
	}
	fmt.Printf(" -urls.ja: %s\n", c.URLs.Ja)
	fmt.Printf(" -urls.en: %s\n", c.URLs.En)
	fmt.Printf(" -urls.aoharu: %s\n", c.URLs.Aoharu)
	fmt.Printf(" -urls.characters: %s\n", c.URLs.Characters)
	fmt.Printf(" -urls.ja_characters: %s\n", c.URLs.JaCharacters)
	fmt.Printf(" -urls.npc: %s\n", c.URLs.NPC)
}
