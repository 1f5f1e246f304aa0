// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables that override profile values
const (
	EnvTarget   = "ROUTEROS_TARGET"
	EnvUsername = "ROUTEROS_USERNAME"
	EnvPassword = "ROUTEROS_PASSWORD"
)

// Profile holds the connection settings for one device
type Profile struct {
	Name              string
	Target            string
	Username          string
	Password          string
	Port              int
	TLS               bool
	VerifyCertificate bool
	ConnectTimeout    time.Duration
	OperationTimeout  time.Duration
	LogLevel          LogLevel
	// Model is the hardware model name used for offline provisioning
	Model string
}

type fileProfile struct {
	Target            string `toml:"target"`
	Username          string `toml:"username"`
	Password          string `toml:"password"`
	Port              int    `toml:"port"`
	TLS               bool   `toml:"tls"`
	VerifyCertificate bool   `toml:"verify_certificate"`
	ConnectTimeout    string `toml:"connect_timeout"`
	OperationTimeout  string `toml:"operation_timeout"`
	LogLevel          string `toml:"log_level"`
	Model             string `toml:"model"`
}

type fileProfiles struct {
	Profiles map[string]fileProfile `toml:"profiles"`
}

// LoadProfiles reads connection profiles from a TOML file
//
// Example file:
//
//	[profiles.core-sw1]
//	target = "192.168.88.1"
//	username = "admin"
//	password = "secret"
//	connect_timeout = "10s"
//	log_level = "debug"
//	model = "CRS326"
func LoadProfiles(path string) (map[string]Profile, error) {
	var raw fileProfiles
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return buildProfiles(raw, meta)
}

// ParseProfiles parses connection profiles from TOML text
func ParseProfiles(data string) (map[string]Profile, error) {
	var raw fileProfiles
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	return buildProfiles(raw, meta)
}

func buildProfiles(raw fileProfiles, meta toml.MetaData) (map[string]Profile, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown profile keys: %s", strings.Join(keys, ", "))
	}

	out := make(map[string]Profile, len(raw.Profiles))
	for name, fp := range raw.Profiles {
		p := Profile{
			Name:              name,
			Target:            strings.TrimSpace(fp.Target),
			Username:          fp.Username,
			Password:          fp.Password,
			Port:              fp.Port,
			TLS:               fp.TLS,
			VerifyCertificate: DefaultVerifyCertificate,
			ConnectTimeout:    DefaultConnectTimeout,
			LogLevel:          LogLevelNone,
			Model:             strings.TrimSpace(fp.Model),
		}

		if meta.IsDefined("profiles", name, "verify_certificate") {
			p.VerifyCertificate = fp.VerifyCertificate
		}
		if meta.IsDefined("profiles", name, "connect_timeout") {
			d, err := time.ParseDuration(strings.TrimSpace(fp.ConnectTimeout))
			if err != nil {
				return nil, fmt.Errorf("profile %s: parse connect_timeout: %w", name, err)
			}
			p.ConnectTimeout = d
		}
		if meta.IsDefined("profiles", name, "operation_timeout") {
			d, err := time.ParseDuration(strings.TrimSpace(fp.OperationTimeout))
			if err != nil {
				return nil, fmt.Errorf("profile %s: parse operation_timeout: %w", name, err)
			}
			p.OperationTimeout = d
		}
		if meta.IsDefined("profiles", name, "log_level") {
			level, err := ParseLogLevel(fp.LogLevel)
			if err != nil {
				return nil, fmt.Errorf("profile %s: %w", name, err)
			}
			p.LogLevel = level
		}
		out[name] = p
	}
	return out, nil
}

// ApplyEnv overrides target and credentials from ROUTEROS_* variables
// looked up through lookup (os.LookupEnv when nil).
func (p Profile) ApplyEnv(lookup func(string) (string, bool)) Profile {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvTarget); ok && v != "" {
		p.Target = v
	}
	if v, ok := lookup(EnvUsername); ok {
		p.Username = v
	}
	if v, ok := lookup(EnvPassword); ok {
		p.Password = v
	}
	return p
}

// Options converts the profile into client options
func (p Profile) Options() []func(*Client) {
	opts := []func(*Client){
		Username(p.Username),
		Password(p.Password),
		TLS(p.TLS),
		VerifyCertificate(p.VerifyCertificate),
		ConnectTimeout(p.ConnectTimeout),
		OperationTimeout(p.OperationTimeout),
	}
	if p.Port != 0 {
		opts = append(opts, Port(p.Port))
	}
	if p.LogLevel != LogLevelNone {
		opts = append(opts, WithLogger(NewConsoleLogger("routeros", p.LogLevel)))
	}
	return opts
}

// NewClient creates an API client from the profile
func (p Profile) NewClient(extra ...func(*Client)) (*Client, error) {
	return NewClient(p.Target, append(p.Options(), extra...)...)
}
