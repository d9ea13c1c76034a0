package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs `toml:"database"`
	ApiServer ServerConfigs   `toml:"api_server"`
	Auth      AuthConfigs     `toml:"auth"`
	Session   SessionConfigs  `toml:"session"`
	Redis     RedisConfigs    `toml:"redis"`
	Stats     StatsConfigs    `toml:"stats"`
	Presence  PresenceConfigs `toml:"presence"`
}

type DatabaseConfigs struct {
	// Driver is mysql in deployments; sqlite is used by local runs and
	// the test fixtures.
	Driver     string `toml:"driver"`
	Host       string `toml:"host"`
	Port       string `toml:"port"`
	Database   string `toml:"database"`
	User       string `toml:"user"`
	Password   string `toml:"password"`
	SQLiteFile string `toml:"sqlite_file"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host         string   `toml:"host"`
	Port         string   `toml:"port"`
	AllowCORS    []string `toml:"allow_cors"`
	MaxLimit     int      `toml:"max_limit"`
	DefaultLimit int      `toml:"default_limit"`
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`

	Google OAuth2Config `toml:"google"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type OAuth2Config struct {
	Name         string `toml:"name"`
	Issuer       string `toml:"issuer"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	IDField      string `toml:"id_field"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type StatsConfigs struct {
	// DefaultWindowDays is the daily-activity window returned when the
	// client does not ask for a specific number of days.
	DefaultWindowDays int `toml:"default_window_days"`
	MaxWindowDays     int `toml:"max_window_days"`
}

type PresenceConfigs struct {
	// HeartbeatTTL is how long a heartbeat keeps a user online. Clients
	// poll at a fraction of this interval.
	HeartbeatTTL time.Duration `toml:"heartbeat_ttl"`
}
