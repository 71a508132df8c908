package config

import "github.com/rs/zerolog"

// GetDefaultProjectConfig obtains a default configuration for a project. The compilation target is left empty and
// must be provided by the user.
func GetDefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Compilation: CompilationConfig{
			Target:                 "",
			OutputPath:             "",
			ConstructorArgs:        []ArgumentConfig{},
			ArtifactCacheDirectory: ".huffgen",
		},
		Logging: LoggingConfig{
			Level:                zerolog.InfoLevel,
			LogDirectory:         "",
			EnableConsoleLogging: true,
		},
	}
}
