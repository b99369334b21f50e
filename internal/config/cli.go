// Package config holds the root command line structure parsed by kong.
package config

import "github.com/nsxt-tools/policygen/internal/cmd"

type CLI struct {
	ConfigFile string    `name:"config" help:"Path to a configuration file (json, yaml or toml)" env:"POLICYGEN_CONFIG"`
	Log        LogConfig `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" help:"Generate terraform provider artifacts for an SDK model type"`
	Inspect  cmd.Inspect       `cmd:"" help:"Print the attribute tree loaded for an SDK model type"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}

type LogConfig struct {
	Level  string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"POLICYGEN_LOG_LEVEL"`
	File   string `help:"Log file path (default: none; console only)" env:"POLICYGEN_LOG_FILE"`
	Format string `help:"Console log format" default:"auto" enum:"auto,text,json" env:"POLICYGEN_LOG_FORMAT"`
}
