// Package config describes the project configuration read by the huffgen CLI.
package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/crytic/huffgen/abiutils"
	"github.com/crytic/huffgen/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ProjectConfig describes the configuration of a huffgen project.
type ProjectConfig struct {
	// Compilation describes the configuration used to generate the project's artifact.
	Compilation CompilationConfig `json:"compilation"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging"`
}

// CompilationConfig describes the configuration options used to generate an artifact.
type CompilationConfig struct {
	// Target describes the path to the JSON-serialized syntax tree to generate code for.
	Target string `json:"target"`

	// OutputPath describes the path the artifact is exported to. If empty, it is derived from the target's name.
	OutputPath string `json:"outputPath"`

	// ConstructorArgs describes the arguments appended to the deployment bytecode, in order.
	ConstructorArgs []ArgumentConfig `json:"constructorArgs"`

	// ArtifactCacheDirectory describes the directory holding the hash of the previously exported artifact, used to
	// report whether a build changed anything. If empty, no hash is kept.
	ArtifactCacheDirectory string `json:"artifactCacheDirectory"`
}

// ArgumentConfig describes a single constructor argument.
type ArgumentConfig struct {
	// Type describes the ABI type of the argument, e.g. uint256 or address.
	Type string `json:"type"`

	// Value describes the textual value of the argument. Integers may be decimal or 0x-prefixed hex.
	Value string `json:"value"`
}

// LoggingConfig describes the configuration options used for logging
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	// Increasing level values represent more severe logs
	Level zerolog.Level `json:"level"`

	// LogDirectory describes the directory where structured log _files_ will be outputted. If the string is empty, then
	// no log files are kept
	LogDirectory string `json:"logDirectory"`

	// EnableConsoleLogging describes whether console logging is enabled
	EnableConsoleLogging bool `json:"enableConsoleLogging"`
}

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path. Fields absent from the
// file keep their default values.
// Returns the ProjectConfig if it succeeds, or an error if one occurs.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	b, err := utils.ReadFile(path)
	if err != nil {
		return nil, err
	}

	projectConfig := GetDefaultProjectConfig()
	err = json.Unmarshal(b, projectConfig)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
// Returns an error if one occurs.
func (p *ProjectConfig) WriteToFile(path string) error {
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Validate validates that the ProjectConfig meets certain requirements.
// Returns an error if one occurs.
func (p *ProjectConfig) Validate() error {
	if strings.TrimSpace(p.Compilation.Target) == "" {
		return errors.Errorf("a compilation target must be provided")
	}

	if _, err := p.Compilation.ParseConstructorArgs(); err != nil {
		return err
	}

	// Trace level logs print every expanded macro, and panic/disabled levels would hide codegen failures
	if p.Logging.Level < zerolog.TraceLevel || p.Logging.Level > zerolog.ErrorLevel {
		return errors.Errorf("log level %q is not supported", p.Logging.Level.String())
	}
	return nil
}

// GetOutputPath returns the path the artifact should be exported to: the configured output path, or the target's
// file name with an ".artifact.json" extension next to the target.
func (c *CompilationConfig) GetOutputPath() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	return utils.GetFilePathWithoutExtension(c.Target) + ".artifact.json"
}

// ParseConstructorArgs converts the configured constructor arguments into typed ABI values.
func (c *CompilationConfig) ParseConstructorArgs() ([]abiutils.ConstructorArg, error) {
	args := make([]abiutils.ConstructorArg, 0, len(c.ConstructorArgs))
	for i, argConfig := range c.ConstructorArgs {
		arg, err := abiutils.ParseConstructorArg(argConfig.Type, argConfig.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "constructor argument %d", i)
		}
		args = append(args, arg)
	}
	return args, nil
}

// ParseArgumentConfig parses a constructor argument written as "type:value", e.g. "uint256:1000".
func ParseArgumentConfig(s string) (ArgumentConfig, error) {
	argType, value, found := strings.Cut(s, ":")
	if !found || argType == "" {
		return ArgumentConfig{}, errors.Errorf("constructor argument %q must be of the form type:value", s)
	}
	return ArgumentConfig{Type: argType, Value: value}, nil
}
