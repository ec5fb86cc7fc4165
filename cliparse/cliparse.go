// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort       = 3318
	defaultDBType     = "sqlite"
	defaultSQLitePath = "topic-vote.db"
	defaultNotifyDay  = 5 // Saturday, counted from Monday = 0
	defaultNotifyTime = "10:00"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	BotToken     string
	GuildID      string
	AdminIDs     []string
	BannedIDs    []string
	NotifyDay    int
	NotifyTime   string
	ConfigPath   string
}

// FileConfig is the YAML config file. Key names follow the bot's original
// config.yaml so existing files keep working.
type FileConfig struct {
	BotAPIToken  string   `yaml:"botApiToken"`
	GuildID      string   `yaml:"guildId"`
	AdminIDs     []string `yaml:"adminIds"`
	BannedUsers  []string `yaml:"bannedUsers"`
	Port         int      `yaml:"port"`
	DatabaseURL  string   `yaml:"databaseUrl"`
	DatabaseType string   `yaml:"databaseType"`
	Votes        struct {
		NotifyToVoteOnDay  *int   `yaml:"notifyToVoteOnDay"`
		NotifyToVoteOnTime string `yaml:"notifyToVoteOnTime"`
	} `yaml:"votes"`
}

// LoadFile reads a YAML config file.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fc, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file: %w", err)
	}
	return fc, nil
}

// ParseFlags builds the configuration. Each setting comes from the first
// source that has it: flag, environment (including .env), config file,
// built-in default.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := pflag.NewFlagSet("topic-vote", pflag.ContinueOnError)

	fs.IntVarP(&cfg.Port, "port", "p", 0, "HTTP server port")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL or SQLite file path")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")
	fs.StringVarP(&cfg.ConfigPath, "config", "c", "", "YAML config file")
	fs.StringVar(&envFile, "env-file", ".env", "Dotenv file loaded into the environment")

	// Secrets (prefer env variables or the config file, but allow CLI for dev)
	fs.StringVar(&cfg.BotToken, "bot-token", "", "Discord bot token (prefer env)")
	fs.StringVar(&cfg.GuildID, "guild", "", "Discord guild for slash commands (empty registers globally)")
	fs.StringSliceVar(&cfg.AdminIDs, "admins", nil, "Comma-separated admin user ids")
	fs.StringSliceVar(&cfg.BannedIDs, "banned", nil, "Comma-separated banned user ids")
	fs.IntVar(&cfg.NotifyDay, "notify-day", 0, "Reminder weekday, 0 = Monday ... 6 = Sunday")
	fs.StringVar(&cfg.NotifyTime, "notify-time", "", "Reminder time of day (HH:MM)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// .env never overrides variables that are already set
	if err := godotenv.Load(envFile); err != nil {
		if fs.Changed("env-file") || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if !fs.Changed("config") {
		cfg.ConfigPath = os.Getenv("CONFIG_PATH")
	}
	var file FileConfig
	if cfg.ConfigPath != "" {
		var err error
		if file, err = LoadFile(cfg.ConfigPath); err != nil {
			return Config{}, err
		}
	}

	if !fs.Changed("port") {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = defaultPort
		}
	}

	if !fs.Changed("database-type") {
		cfg.DatabaseType = firstNonEmpty(os.Getenv("DATABASE_TYPE"), file.DatabaseType, defaultDBType)
	}
	if !fs.Changed("database-url") {
		cfg.DatabaseURL = firstNonEmpty(os.Getenv("DATABASE_URL"), file.DatabaseURL)
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != defaultDBType {
			return Config{}, errors.New("database URL required (use -d, DATABASE_URL or databaseUrl)")
		}
		cfg.DatabaseURL = defaultSQLitePath
	}

	if !fs.Changed("bot-token") {
		cfg.BotToken = firstNonEmpty(os.Getenv("BOT_TOKEN"), file.BotAPIToken)
	}
	if cfg.BotToken == "" {
		return Config{}, errors.New("bot token required (use BOT_TOKEN or botApiToken)")
	}

	if !fs.Changed("guild") {
		cfg.GuildID = firstNonEmpty(os.Getenv("GUILD_ID"), file.GuildID)
	}

	if !fs.Changed("admins") {
		cfg.AdminIDs = idList(os.Getenv("ADMIN_IDS"), file.AdminIDs)
	}
	if len(cfg.AdminIDs) == 0 {
		return Config{}, errors.New("at least one admin id required (use --admins, ADMIN_IDS or adminIds)")
	}
	if !fs.Changed("banned") {
		cfg.BannedIDs = idList(os.Getenv("BANNED_IDS"), file.BannedUsers)
	}

	if !fs.Changed("notify-day") {
		if dayStr := os.Getenv("NOTIFY_DAY"); dayStr != "" {
			day, err := strconv.Atoi(dayStr)
			if err != nil {
				return Config{}, errors.New("invalid NOTIFY_DAY env variable")
			}
			cfg.NotifyDay = day
		} else if file.Votes.NotifyToVoteOnDay != nil {
			cfg.NotifyDay = *file.Votes.NotifyToVoteOnDay
		} else {
			cfg.NotifyDay = defaultNotifyDay
		}
	}
	if cfg.NotifyDay < 0 || cfg.NotifyDay > 6 {
		return Config{}, fmt.Errorf("notify day must be between 0 and 6, got %d", cfg.NotifyDay)
	}
	if !fs.Changed("notify-time") {
		cfg.NotifyTime = firstNonEmpty(os.Getenv("NOTIFY_TIME"), file.Votes.NotifyToVoteOnTime, defaultNotifyTime)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// idList prefers a comma-separated env value over the file's list.
func idList(env string, file []string) []string {
	var ids []string
	if env != "" {
		for _, id := range strings.Split(env, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		return ids
	}
	for _, id := range file {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
