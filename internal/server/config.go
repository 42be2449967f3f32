package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/loan-amortization/internal/config"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Server timeouts used when the configuration leaves them unset.
const (
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
)

// sizeUnits maps the accepted request size suffixes to their byte multiples.
var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
	"G":  1 << 30,
	"GB": 1 << 30,
}

// Config holds the runtime settings of the calculator API.
type Config struct {
	Address        string               `yaml:"address"`
	MaxRequestSize string               `yaml:"maxRequestSize"`
	ReadTimeout    time.Duration        `yaml:"readTimeout"`
	WriteTimeout   time.Duration        `yaml:"writeTimeout"`
	Logging        config.LoggingConfig `yaml:"logging"`

	// resolved form of MaxRequestSize
	requestLimit int64
}

func defaultConfig() *Config {
	return &Config{
		Address:        constants.DefaultServerAddress,
		MaxRequestSize: strconv.FormatInt(constants.DefaultMaxRequestSizeBytes, 10),
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		requestLimit:   constants.DefaultMaxRequestSizeBytes,
	}
}

// LoadConfig reads the server settings from a YAML file. An empty path or a
// file that does not exist yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read server config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config %s: %w", path, err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, fmt.Errorf("invalid server config %s: %w", path, err)
	}
	return cfg, nil
}

// RequestSizeBytes is the largest request body the handler accepts.
func (c *Config) RequestSizeBytes() int64 {
	return c.requestLimit
}

// SetRequestSizeBytes replaces the body limit. Non-positive sizes are ignored.
func (c *Config) SetRequestSizeBytes(size int64) {
	if size <= 0 {
		return
	}
	c.requestLimit = size
	c.MaxRequestSize = strconv.FormatInt(size, 10)
}

// resolve fills zero values left by the file and parses the size limit.
func (c *Config) resolve() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}

	limit, err := ParseSize(c.MaxRequestSize)
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = constants.DefaultMaxRequestSizeBytes
	}
	c.requestLimit = limit
	c.MaxRequestSize = strconv.FormatInt(limit, 10)
	return nil
}

// ParseSize turns a byte count with an optional B, K, M or G suffix (case
// insensitive, KB/MB/GB also accepted) into bytes. Blank input means the
// default limit.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return constants.DefaultMaxRequestSizeBytes, nil
	}

	digits := strings.TrimRightFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	suffix := strings.TrimSpace(s[len(digits):])
	digits = strings.TrimSpace(digits)
	if digits == "" {
		return 0, fmt.Errorf("size %q has no numeric part", value)
	}

	multiple, ok := sizeUnits[suffix]
	if !ok {
		return 0, fmt.Errorf("size %q has unknown unit %q", value, suffix)
	}

	count, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("size %q: %w", value, err)
	}
	if count < 0 {
		return 0, fmt.Errorf("size %q is negative", value)
	}
	if count > math.MaxInt64/multiple {
		return 0, fmt.Errorf("size %q does not fit in 64 bits", value)
	}
	return count * multiple, nil
}
