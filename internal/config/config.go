package config

import (
    "errors"
    "fmt"
    "os"
    "strings"

    "gopkg.in/yaml.v3"
)

type Server struct {
    Port              string `yaml:"port"`
    RequestTimeoutSec int    `yaml:"request_timeout_sec"`
}

type Refresh struct {
    IntervalSec     int `yaml:"interval_sec"`
    FetchTimeoutSec int `yaml:"fetch_timeout_sec"`
    MaxConcurrency  int `yaml:"max_concurrency"`
}

type Display struct {
    PricePrecision  int `yaml:"price_precision"`
    VolumePrecision int `yaml:"volume_precision"`
}

type Log struct {
    Level string `yaml:"level"`
}

// Symbol is one tracked ticker with its display name.
type Symbol struct {
    Ticker string `yaml:"ticker"`
    Name   string `yaml:"name"`
}

type Config struct {
    Server  Server   `yaml:"server"`
    Refresh Refresh  `yaml:"refresh"`
    Display Display  `yaml:"display"`
    Log     Log      `yaml:"log"`
    Symbols []Symbol `yaml:"symbols"`
}

func Default() Config {
    return Config{
        Server:  Server{Port: "8080", RequestTimeoutSec: 10},
        Refresh: Refresh{IntervalSec: 60, FetchTimeoutSec: 10, MaxConcurrency: 5},
        Display: Display{PricePrecision: 2, VolumePrecision: 1},
        Log:     Log{Level: "info"},
        Symbols: []Symbol{
            {Ticker: "GOOGL", Name: "Alphabet"},
            {Ticker: "AMZN", Name: "Amazon"},
            {Ticker: "AAPL", Name: "Apple"},
            {Ticker: "META", Name: "Meta Platforms"},
            {Ticker: "MSFT", Name: "Microsoft"},
            {Ticker: "NVDA", Name: "Nvidia"},
            {Ticker: "TSLA", Name: "Tesla"},
            {Ticker: "ORCL", Name: "Oracle"},
            {Ticker: "AVGO", Name: "Broadcom"},
        },
    }
}

// Load reads YAML config from path. If path is empty or the file does not
// exist, it returns defaults. Environment variables override select fields
// after the file is applied.
func Load(path string) (Config, error) {
    cfg := Default()
    if path == "" {
        if _, err := os.Stat("configs/config.yaml"); err == nil {
            path = "configs/config.yaml"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := yaml.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    if err := cfg.Validate(); err != nil {
        return cfg, err
    }
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" {
        cfg.Server.Port = v
    }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int
        fmt.Sscanf(v, "%d", &x)
        if x > 0 {
            cfg.Server.RequestTimeoutSec = x
        }
    }
    if v := os.Getenv("REFRESH_INTERVAL_SEC"); v != "" {
        var x int
        fmt.Sscanf(v, "%d", &x)
        if x > 0 {
            cfg.Refresh.IntervalSec = x
        }
    }
    if v := os.Getenv("FETCH_TIMEOUT_SEC"); v != "" {
        var x int
        fmt.Sscanf(v, "%d", &x)
        if x > 0 {
            cfg.Refresh.FetchTimeoutSec = x
        }
    }
    if v := os.Getenv("MAX_CONCURRENCY"); v != "" {
        var x int
        fmt.Sscanf(v, "%d", &x)
        if x > 0 {
            cfg.Refresh.MaxConcurrency = x
        }
    }
    if v := os.Getenv("LOG_LEVEL"); v != "" {
        cfg.Log.Level = v
    }
    if v := os.Getenv("SYMBOLS"); v != "" {
        // CSV of tickers; display names fall back to the defaults, then to
        // the ticker itself.
        names := Default().CompanyNames()
        var symbols []Symbol
        for _, t := range splitCSV(v) {
            t = strings.ToUpper(t)
            name := names[t]
            if name == "" {
                name = t
            }
            symbols = append(symbols, Symbol{Ticker: t, Name: name})
        }
        if len(symbols) > 0 {
            cfg.Symbols = symbols
        }
    }
}

// Validate mirrors the invariants the rest of the system assumes.
func (c Config) Validate() error {
    if len(c.Symbols) == 0 {
        return errors.New("config: symbols must be a non-empty list")
    }
    seen := make(map[string]struct{}, len(c.Symbols))
    for _, s := range c.Symbols {
        if strings.TrimSpace(s.Ticker) == "" {
            return errors.New("config: symbol ticker cannot be empty")
        }
        if _, dup := seen[s.Ticker]; dup {
            return fmt.Errorf("config: duplicate symbol %s", s.Ticker)
        }
        seen[s.Ticker] = struct{}{}
    }
    if c.Refresh.IntervalSec < 1 {
        return errors.New("config: refresh.interval_sec must be a positive integer")
    }
    if c.Refresh.FetchTimeoutSec < 1 {
        return errors.New("config: refresh.fetch_timeout_sec must be a positive integer")
    }
    if c.Display.PricePrecision < 0 || c.Display.VolumePrecision < 0 {
        return errors.New("config: display precision must be non-negative")
    }
    return nil
}

// Tickers returns the tracked tickers in configured order.
func (c Config) Tickers() []string {
    out := make([]string, 0, len(c.Symbols))
    for _, s := range c.Symbols {
        out = append(out, s.Ticker)
    }
    return out
}

// CompanyNames returns the ticker -> display name mapping.
func (c Config) CompanyNames() map[string]string {
    out := make(map[string]string, len(c.Symbols))
    for _, s := range c.Symbols {
        out[s.Ticker] = s.Name
    }
    return out
}

func splitCSV(s string) []string {
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p != "" {
            out = append(out, p)
        }
    }
    return out
}
