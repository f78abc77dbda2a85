// Package config loads techradar settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. radar.toml
//  3. .env file and process environment, variables prefixed TECHRADAR_
//  4. command-line flags (applied by the CLI)
//
// Example radar.toml:
//
//	[radar]
//	title = "Platform Radar"
//	rings = ["0-6m", "6-12m", "1-2y", "3y+"]
//
//	[source]
//	url = "https://docs.google.com/spreadsheets/d/<id>/export?format=csv"
//
//	[render]
//	style = "print"
//	seed = 7
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/techradar/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TECHRADAR_"

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "radar.toml"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full settings tree.
type Config struct {
	Radar  RadarConfig  `toml:"radar"`
	Source SourceConfig `toml:"source"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

type RadarConfig struct {
	Title     string   `toml:"title"`
	Subtitle  string   `toml:"subtitle"`
	Rings     []string `toml:"rings"`
	Quadrants []string `toml:"quadrants"`
}

type SourceConfig struct {
	URL      string      `toml:"url"`      // CSV export
	HTMLURL  string      `toml:"html_url"` // published page
	Proxies  []string    `toml:"proxies"`
	File     string      `toml:"file"`
	Attempts int         `toml:"attempts"` // HTTP attempts per source
	NoSample bool        `toml:"no_sample"`
	Mongo    MongoConfig `toml:"mongo"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type RenderConfig struct {
	Width   float64  `toml:"width"`
	Height  float64  `toml:"height"`
	Style   string   `toml:"style"`
	Seed    uint64   `toml:"seed"`
	Formats []string `toml:"formats"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Source: SourceConfig{
			Attempts: 3,
			Mongo:    MongoConfig{Database: "techradar", Collection: "entries"},
		},
		Render: RenderConfig{
			Width:   800,
			Height:  600,
			Style:   "simple",
			Formats: []string{"svg"},
		},
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Backend: CacheFile},
	}
}

// Load reads path over the defaults and then applies the environment. An
// empty path tries DefaultFile and skips it silently when missing. envFiles
// are passed to godotenv; with none, ".env" is tried.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil && (explicit || !os.IsNotExist(err)) {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes TOML text over the defaults without touching the
// environment.
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	return cfg, cfg.Validate()
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "read .env")
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read env files")
	}
	return nil
}

// applyEnv overlays TECHRADAR_* variables. lookup is os.LookupEnv outside
// tests.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	list := func(name string, dst *[]string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = splitList(v)
		}
	}

	str("TITLE", &c.Radar.Title)
	str("SUBTITLE", &c.Radar.Subtitle)
	list("RINGS", &c.Radar.Rings)
	list("QUADRANTS", &c.Radar.Quadrants)

	str("SOURCE_URL", &c.Source.URL)
	str("SOURCE_HTML_URL", &c.Source.HTMLURL)
	list("SOURCE_PROXIES", &c.Source.Proxies)
	str("SOURCE_FILE", &c.Source.File)
	str("MONGO_URI", &c.Source.Mongo.URI)
	str("MONGO_DATABASE", &c.Source.Mongo.Database)
	str("MONGO_COLLECTION", &c.Source.Mongo.Collection)

	str("STYLE", &c.Render.Style)
	list("FORMATS", &c.Render.Formats)

	str("ADDR", &c.Server.Addr)
	str("CACHE", &c.Cache.Backend)
	str("CACHE_DIR", &c.Cache.Dir)
	str("REDIS_ADDR", &c.Cache.RedisAddr)

	for name, dst := range map[string]*float64{"WIDTH": &c.Render.Width, "HEIGHT": &c.Render.Height} {
		if v, ok := lookup(EnvPrefix + name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s%s", EnvPrefix, name)
			}
			*dst = f
		}
	}
	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %sSEED", EnvPrefix)
		}
		c.Render.Seed = n
	}
	if v, ok := lookup(EnvPrefix + "SOURCE_ATTEMPTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %sSOURCE_ATTEMPTS", EnvPrefix)
		}
		c.Source.Attempts = n
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if len(c.Radar.Rings) > 0 {
		if err := errors.ValidateRings(c.Radar.Rings); err != nil {
			return err
		}
	}
	if err := errors.ValidateViewport(c.Render.Width, c.Render.Height); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis needs redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Source.URL != "" {
		if err := errors.ValidateURL(c.Source.URL); err != nil {
			return fmt.Errorf("source.url: %w", err)
		}
	}
	if c.Source.HTMLURL != "" {
		if err := errors.ValidateURL(c.Source.HTMLURL); err != nil {
			return fmt.Errorf("source.html_url: %w", err)
		}
	}
	return nil
}
