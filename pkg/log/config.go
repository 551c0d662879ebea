// Copyright 2025 CrossRelay Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"io"

	"go.uber.org/zap/zapcore"

	"github.com/crossrelay/crossrelay/pkg/private/serrors"
	"github.com/crossrelay/crossrelay/private/config"
)

// DefaultConsoleLevel is the default log level for the console.
const DefaultConsoleLevel = "info"

var _ config.Config = (*Config)(nil)

// Config is the configuration for the logger.
type Config struct {
	// Console is the configuration for the console logging.
	Console ConsoleConfig `toml:"console,omitempty"`
}

// InitDefaults populates unset fields in cfg to their default values.
func (c *Config) InitDefaults() {
	if c.Console.Level == "" {
		c.Console.Level = DefaultConsoleLevel
	}
	if c.Console.Format == "" {
		c.Console.Format = "human"
	}
}

// Validate validates the config.
func (c *Config) Validate() error {
	if err := c.Console.validate(); err != nil {
		return serrors.Wrap("validating console config", err)
	}
	return nil
}

// Sample writes the sample configuration to dst.
func (c *Config) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteSample(dst, path, ctx,
		config.StringSampler{
			Text: loggingConsoleSample,
			Name: "console",
		},
	)
}

// ConfigName returns the name this config should have in a config file.
func (c *Config) ConfigName() string {
	return "log"
}

// ConsoleConfig is the config for the console logger.
type ConsoleConfig struct {
	// Level of console logging (defaults to info).
	Level string `toml:"level,omitempty"`
	// Format of the console logging (human|json).
	Format string `toml:"format,omitempty"`
}

func (c *ConsoleConfig) validate() error {
	if c.Level != "" {
		if _, err := zapcore.ParseLevel(c.Level); err != nil {
			return serrors.Wrap("parsing level", err, "level", c.Level)
		}
	}
	if c.Format != "" && c.Format != "human" && c.Format != "json" {
		return serrors.New("format not supported", "format", c.Format)
	}
	return nil
}

const loggingConsoleSample = `
# Console logging level (debug|info|warn|error) (default info)
level = "info"

# Console logging format (human|json) (default human)
format = "human"
`
