package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	// Engine holds every scoring heuristic. The numbers were hand-tuned
	// against observed season outcomes and will be recalibrated; they live
	// in config rather than in code for that reason.
	Engine struct {
		MinCompositeScore        float64       `yaml:"min_composite_score"`
		MinCriteriaComprehensive int           `yaml:"min_criteria_comprehensive"`
		MinCriteriaFallback      int           `yaml:"min_criteria_fallback"`
		InningVulnThreshold      float64       `yaml:"inning_vuln_threshold"`
		MinQualifyingInnings     int           `yaml:"min_qualifying_innings"`
		PositionVulnThreshold    float64       `yaml:"position_vuln_threshold"`
		PositionHitRateThreshold float64       `yaml:"position_hit_rate_threshold"`
		RecentAvgThreshold       float64       `yaml:"recent_avg_threshold"`
		RecentOPSThreshold       float64       `yaml:"recent_ops_threshold"`
		OptimalScoreThreshold    float64       `yaml:"optimal_score_threshold"`
		TierElite                float64       `yaml:"tier_elite"`
		TierStrong               float64       `yaml:"tier_strong"`
		TierMonitoring           float64       `yaml:"tier_monitoring"`
		CacheTTL                 time.Duration `yaml:"cache_ttl"`
	} `yaml:"engine"`
	Sources struct {
		// Mode selects where daily payloads come from: "file" or "http".
		Mode        string        `yaml:"mode"`
		DataDir     string        `yaml:"data_dir"`
		AnalysisURL string        `yaml:"analysis_url"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"sources"`
	LineupFeed struct {
		Enabled        bool          `yaml:"enabled"`
		WebSocketURL   string        `yaml:"websocket_url"`
		APIKey         string        `yaml:"api_key"`
		Teams          []string      `yaml:"teams"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
	} `yaml:"lineup_feed"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
		ResponseTTL time.Duration `yaml:"response_ttl"`
	} `yaml:"cache"`
	History struct {
		Enabled     bool          `yaml:"enabled"`
		Host        string        `yaml:"host"`
		Port        int           `yaml:"port"`
		Database    string        `yaml:"database"`
		User        string        `yaml:"user"`
		Password    string        `yaml:"password"`
		DialTimeout time.Duration `yaml:"dial_timeout"`
	} `yaml:"history"`
	Alerts struct {
		Enabled     bool     `yaml:"enabled"`
		Brokers     []string `yaml:"brokers"`
		Topic       string   `yaml:"topic"`
		Compression string   `yaml:"compression"`
	} `yaml:"alerts"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.ApplyEngineDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Sources.DataDir = v
	}
	if v := os.Getenv("ANALYSIS_URL"); v != "" {
		c.Sources.AnalysisURL = v
	}
	if v := os.Getenv("LINEUP_FEED_API_KEY"); v != "" {
		c.LineupFeed.APIKey = v
	}
	if v := os.Getenv("LINEUP_FEED_TEAMS"); v != "" {
		c.LineupFeed.Teams = strings.Split(v, ",")
	}
	if v := os.Getenv("ALERT_BROKERS"); v != "" {
		c.Alerts.Brokers = strings.Split(v, ",")
	}

	return c, nil
}

// ApplyEngineDefaults fills zero-valued engine knobs with the tuned defaults.
func (c *Config) ApplyEngineDefaults() {
	e := &c.Engine
	if e.MinCompositeScore == 0 {
		e.MinCompositeScore = 40
	}
	if e.MinCriteriaComprehensive == 0 {
		e.MinCriteriaComprehensive = 2
	}
	if e.MinCriteriaFallback == 0 {
		e.MinCriteriaFallback = 2
	}
	if e.InningVulnThreshold == 0 {
		e.InningVulnThreshold = 10
	}
	if e.MinQualifyingInnings == 0 {
		e.MinQualifyingInnings = 1
	}
	if e.PositionVulnThreshold == 0 {
		e.PositionVulnThreshold = 10
	}
	if e.PositionHitRateThreshold == 0 {
		e.PositionHitRateThreshold = 25
	}
	if e.RecentAvgThreshold == 0 {
		e.RecentAvgThreshold = 0.220
	}
	if e.RecentOPSThreshold == 0 {
		e.RecentOPSThreshold = 0.650
	}
	if e.OptimalScoreThreshold == 0 {
		e.OptimalScoreThreshold = 75
	}
	if e.TierElite == 0 {
		e.TierElite = 85
	}
	if e.TierStrong == 0 {
		e.TierStrong = 70
	}
	if e.TierMonitoring == 0 {
		e.TierMonitoring = 55
	}
	if e.CacheTTL == 0 {
		e.CacheTTL = 30 * time.Minute
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Sources.Mode == "" {
		return fmt.Errorf("sources.mode is required")
	}
	if c.Sources.Mode != "file" && c.Sources.Mode != "http" {
		return fmt.Errorf("sources.mode must be 'file' or 'http', got '%s'", c.Sources.Mode)
	}
	if c.Sources.Mode == "file" && c.Sources.DataDir == "" {
		return fmt.Errorf("sources.data_dir is required for file mode")
	}
	if c.Sources.Mode == "http" && c.Sources.AnalysisURL == "" {
		return fmt.Errorf("sources.analysis_url is required for http mode")
	}
	if c.Alerts.Enabled && len(c.Alerts.Brokers) == 0 {
		return fmt.Errorf("alerts.brokers cannot be empty when alerts are enabled")
	}
	if c.History.Enabled && c.History.Host == "" {
		return fmt.Errorf("history.host is required when history is enabled")
	}
	if c.Engine.TierElite <= c.Engine.TierStrong || c.Engine.TierStrong <= c.Engine.TierMonitoring {
		return fmt.Errorf("engine tier cutoffs must be strictly descending")
	}
	return nil
}
