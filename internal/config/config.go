package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okra-platform/fedcompose/internal/joinspec"
)

// FileNames are the configuration file names searched for, in order.
var FileNames = []string{"supergraph.yaml", "supergraph.yml", "supergraph.json"}

const DefaultOutput = "./supergraph.graphql"

var (
	ErrNotFound = errors.New("no supergraph configuration found")
	ErrInvalid  = errors.New("invalid supergraph configuration")
)

// Config represents the supergraph.yaml configuration file
type Config struct {
	Output      string                    `yaml:"output" json:"output"`
	MetricsFile string                    `yaml:"metrics_file,omitempty" json:"metrics_file,omitempty"`
	JoinVersion string                    `yaml:"join_version,omitempty" json:"join_version,omitempty"`
	Watch       WatchConfig               `yaml:"watch,omitempty" json:"watch,omitempty"`
	Subgraphs   map[string]SubgraphConfig `yaml:"subgraphs" json:"subgraphs"`
}

// WatchConfig contains watch mode configuration
type WatchConfig struct {
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// SubgraphConfig describes one subgraph to compose
type SubgraphConfig struct {
	RoutingURL string       `yaml:"routing_url" json:"routing_url"`
	Schema     SchemaConfig `yaml:"schema" json:"schema"`
}

type SchemaConfig struct {
	File string `yaml:"file" json:"file"`
}

// LoadConfig loads the supergraph configuration from the current directory or a parent directory
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific path. Relative
// paths in the file are resolved against the file's directory.
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &config)
	} else {
		err = yaml.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults
	if config.Output == "" {
		config.Output = DefaultOutput
	}
	if config.Subgraphs == nil {
		config.Subgraphs = map[string]SubgraphConfig{}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	config.resolve(dir)

	return &config, nil
}

// Validate checks that every subgraph has a routing URL and a schema file.
// A configuration without subgraphs is valid.
func (c *Config) Validate() error {
	var problems []string
	for _, name := range c.SubgraphNames() {
		sg := c.Subgraphs[name]
		if sg.RoutingURL == "" {
			problems = append(problems, fmt.Sprintf("subgraph %s: routing_url is required", name))
		}
		if sg.Schema.File == "" {
			problems = append(problems, fmt.Sprintf("subgraph %s: schema.file is required", name))
		}
	}
	if c.JoinVersion != "" {
		if _, err := joinspec.ParseVersion(c.JoinVersion); err != nil {
			problems = append(problems, fmt.Sprintf("join_version: %v", err))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// SubgraphNames returns the configured subgraph names in sorted order.
func (c *Config) SubgraphNames() []string {
	names := make([]string, 0, len(c.Subgraphs))
	for name := range c.Subgraphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemaFiles returns the schema file of every subgraph.
func (c *Config) SchemaFiles() []string {
	files := make([]string, 0, len(c.Subgraphs))
	for _, name := range c.SubgraphNames() {
		files = append(files, c.Subgraphs[name].Schema.File)
	}
	return files
}

func (c *Config) resolve(dir string) {
	c.Output = resolvePath(dir, c.Output)
	c.MetricsFile = resolvePath(dir, c.MetricsFile)
	for name, sg := range c.Subgraphs {
		sg.Schema.File = resolvePath(dir, sg.Schema.File)
		c.Subgraphs[name] = sg
	}
}

func resolvePath(dir, path string) string {
	if path == "" || path == "-" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Write stores the configuration as YAML at path.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// loadConfigFromDir searches for a configuration file in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				config, err := LoadConfigFromPath(configPath)
				if err != nil {
					return nil, "", err
				}
				return config, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w in %s or any parent directory", ErrNotFound, startDir)
}
