// Copyright 2022 p1nant0m <wgblike@gmail.com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	DefaultConfigPath = "config.json"

	defaultPort    = 6667
	defaultTLSPort = 6697

	// keyDelimiter replaces viper's "." so option keys may contain dots.
	keyDelimiter = "::"
)

// IRC holds the settings needed to reach and register with a single IRC server.
type IRC struct {
	Server       string   `mapstructure:"server"`
	Port         int      `mapstructure:"port"`
	UseSSL       bool     `mapstructure:"use_ssl"`
	Nickname     string   `mapstructure:"nickname"`
	AltNicks     []string `mapstructure:"alt_nicks"`
	Username     string   `mapstructure:"username"`
	Realname     string   `mapstructure:"realname"`
	Password     string   `mapstructure:"password"`
	NickPassword string   `mapstructure:"nick_password"`
	Channels     []string `mapstructure:"channels"`
}

// Config is the content of the configuration file. Options carries the
// free-form key/value section that ResolveConnection consumes.
type Config struct {
	IRC     `mapstructure:",squash"`
	Options map[string]string `mapstructure:"options"`
}

// Load reads the configuration file at filePath. The format is picked from
// the file extension, so json, yaml and toml all work. Keys are case
// insensitive, including the ones inside options.
func Load(filePath string) (*Config, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %v: %w", filePath, err)
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("failed to parse config file %v: %w", filePath, err)
	}
	// An empty options section does not survive Unmarshal.
	if conf.Options == nil && v.IsSet("options") {
		conf.Options = map[string]string{}
	}

	if err := conf.complete(); err != nil {
		return nil, err
	}

	return &conf, nil
}

// complete validates the required keys and fills in derived defaults.
func (c *Config) complete() error {
	if c.Server == "" {
		return &ConfigError{Kind: Missing, Key: "server"}
	}
	if c.Nickname == "" {
		return &ConfigError{Kind: Missing, Key: "nickname"}
	}
	if c.Options == nil {
		return &ConfigError{Kind: Missing, Key: "options"}
	}

	if c.Port == 0 {
		c.Port = defaultPort
		if c.UseSSL {
			c.Port = defaultTLSPort
		}
	}
	if c.Username == "" {
		c.Username = c.Nickname
	}
	if c.Realname == "" {
		c.Realname = c.Nickname
	}

	return nil
}
