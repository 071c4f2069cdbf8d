// MIT License
//
// Copyright (c) 2023 Lack
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v2"

	"github.com/vine-io/bpmnconv/convert"
)

// defaultConfigs are tried in order when --config is not given.
var defaultConfigs = []string{"~/.bpmnconv.yaml", "~/.bpmnconv.yml", "~/.bpmnconv.toml"}

// Config is the content of the configuration file.
type Config struct {
	Workers         int    `yaml:"workers" toml:"workers"`
	LogLevel        string `yaml:"log_level" toml:"log_level"`
	Exporter        string `yaml:"exporter" toml:"exporter"`
	ExporterVersion string `yaml:"exporter_version" toml:"exporter_version"`
	TargetNamespace string `yaml:"target_namespace" toml:"target_namespace"`
}

func defaultConfig() *Config {
	return &Config{LogLevel: "info"}
}

// loadConfig reads path, or the first default file found when path is
// empty. A missing default file is not an error.
func loadConfig(path string) (*Config, error) {
	if path != "" {
		return readConfig(path)
	}
	for _, name := range defaultConfigs {
		expanded, err := homedir.Expand(name)
		if err != nil {
			return nil, err
		}
		if _, err = os.Stat(expanded); err == nil {
			return readConfig(expanded)
		}
	}
	return defaultConfig(), nil
}

func readConfig(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %v", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read config: %v", err)
	}

	cfg := defaultConfig()
	switch strings.ToLower(filepath.Ext(expanded)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %v", expanded, err)
	}
	return cfg, nil
}

// Options returns the engine options the configuration selects.
func (c *Config) Options() []convert.Option {
	var opts []convert.Option
	if c.Workers > 0 {
		opts = append(opts, convert.WithWorkers(c.Workers))
	}
	if c.Exporter != "" {
		opts = append(opts, convert.WithExporter(c.Exporter, c.ExporterVersion))
	}
	if c.TargetNamespace != "" {
		opts = append(opts, convert.WithTargetNamespace(c.TargetNamespace))
	}
	return opts
}
