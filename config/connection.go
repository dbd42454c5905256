package config

import (
	"fmt"
	"strconv"
)

type ErrorKind int

const (
	Missing ErrorKind = iota
	Invalid
)

// ConfigError reports a required key that is absent or cannot be parsed.
type ConfigError struct {
	Kind ErrorKind
	Key  string
	Err  error
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case Invalid:
		return fmt.Sprintf("%v is not valid", e.Key)
	default:
		return fmt.Sprintf("%v was not found in config", e.Key)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

const (
	KeyDBHost = "db_host"
	KeyDBPort = "db_port"
	KeyDBName = "db_name"
	KeyDBUser = "db_user"
	KeyDBPass = "db_pass"
	KeyDebug  = "debug"
)

// ConnectionConfig is the resolved database location plus the debug switch.
type ConnectionConfig struct {
	Host  string
	Port  uint16
	Name  string
	User  string
	Pass  string
	Debug bool
}

// HasAuth reports whether credentials should be presented to the database.
// Both user and pass must be set.
func (c *ConnectionConfig) HasAuth() bool {
	return c.User != "" && c.Pass != ""
}

// ResolveConnection builds a ConnectionConfig from the options map.
// The five db_* keys are strict; debug falls back to false when it is
// absent or not a boolean.
func ResolveConnection(options map[string]string) (*ConnectionConfig, error) {
	lookup := func(key string) (string, error) {
		val, ok := options[key]
		if !ok {
			return "", &ConfigError{Kind: Missing, Key: key}
		}
		return val, nil
	}

	var (
		conf ConnectionConfig
		err  error
	)

	if conf.Host, err = lookup(KeyDBHost); err != nil {
		return nil, err
	}

	portStr, err := lookup(KeyDBPort)
	if err != nil {
		return nil, err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, &ConfigError{Kind: Invalid, Key: KeyDBPort, Err: err}
	}
	conf.Port = uint16(port)

	if conf.Name, err = lookup(KeyDBName); err != nil {
		return nil, err
	}
	if conf.User, err = lookup(KeyDBUser); err != nil {
		return nil, err
	}
	if conf.Pass, err = lookup(KeyDBPass); err != nil {
		return nil, err
	}

	if debug, err := strconv.ParseBool(options[KeyDebug]); err == nil {
		conf.Debug = debug
	}

	return &conf, nil
}
