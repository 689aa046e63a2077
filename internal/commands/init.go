package commands

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/okra-platform/fedcompose/internal/compose"
	"github.com/okra-platform/fedcompose/internal/config"
)

var ErrConfigExists = errors.New("supergraph configuration already exists")

const defaultConfigFile = "supergraph.yaml"

type InitOptions struct {
	Output       string
	SubgraphName string
	RoutingURL   string
	SchemaFile   string
}

type InitCommand struct {
	filesystem FileSystem
	output     Output
	configFile string
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand() *InitCommand {
	return &InitCommand{
		filesystem: &osFileSystem{},
		output:     &defaultOutput{},
		configFile: defaultConfigFile,
	}
}

func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	if _, err := ic.filesystem.Stat(ic.configFile); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, ic.configFile)
	}

	var options *InitOptions
	var err error

	// For testing: use provided options instead of prompting
	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return fmt.Errorf("failed to get init options: %w", err)
		}
	}

	if err := validateSubgraphName(options.SubgraphName); err != nil {
		return err
	}
	if err := validateRoutingURL(options.RoutingURL); err != nil {
		return err
	}

	cfg := ic.buildConfig(options)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Write(ic.configFile); err != nil {
		return err
	}

	ic.output.Printf("✅ Created %s with subgraph %s\n", ic.configFile, options.SubgraphName)
	return nil
}

func (ic *InitCommand) buildConfig(options *InitOptions) *config.Config {
	output := options.Output
	if output == "" {
		output = config.DefaultOutput
	}
	schemaFile := options.SchemaFile
	if schemaFile == "" {
		schemaFile = "./" + options.SubgraphName + ".graphql"
	}

	return &config.Config{
		Output: output,
		Subgraphs: map[string]config.SubgraphConfig{
			options.SubgraphName: {
				RoutingURL: options.RoutingURL,
				Schema:     config.SchemaConfig{File: filepath.ToSlash(schemaFile)},
			},
		},
	}
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	options := &InitOptions{Output: config.DefaultOutput}

	form := ic.createInitForm(options)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		// Normal execution
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (ic *InitCommand) createInitForm(options *InitOptions) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Supergraph output").
				Description("Where the composed supergraph SDL is written").
				Value(&options.Output),

			huh.NewInput().
				Title("Subgraph name").
				Description("Becomes the join__Graph value in upper case").
				Value(&options.SubgraphName).
				Validate(validateSubgraphName),

			huh.NewInput().
				Title("Routing URL").
				Description("URL the router uses to reach the subgraph").
				Value(&options.RoutingURL).
				Validate(validateRoutingURL),

			huh.NewInput().
				Title("Schema file").
				Description("Path to the subgraph SDL, relative to the configuration").
				Placeholder("./<name>.graphql").
				Value(&options.SchemaFile),
		),
	)
}

func validateSubgraphName(s string) error {
	if s == "" {
		return fmt.Errorf("subgraph name cannot be empty")
	}
	if _, err := compose.DeriveToken(s); err != nil {
		return err
	}
	return nil
}

func validateRoutingURL(s string) error {
	if s == "" {
		return fmt.Errorf("routing URL cannot be empty")
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("routing URL %q must be an absolute URL", s)
	}
	return nil
}
