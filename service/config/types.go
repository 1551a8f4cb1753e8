package config

import "github.com/thirukguru/version-sync/model"

// DefaultConfigPath is read when present and no config path is given.
const DefaultConfigPath = ".version-sync.yaml"

// DefaultOutput keeps a successful default run silent.
const DefaultOutput = "quiet"

const envPrefix = "VERSION_SYNC_"

// FileConfig is the YAML layout of the config file.
type FileConfig struct {
	Source       string    `yaml:"source"`
	Target       string    `yaml:"target"`
	SourceField  string    `yaml:"source_field"`
	TargetField  string    `yaml:"target_field"`
	SourceFormat string    `yaml:"source_format"`
	TargetFormat string    `yaml:"target_format"`
	Atomic       *bool     `yaml:"atomic"`
	FinalNewline *bool     `yaml:"final_newline"`
	Output       string    `yaml:"output"`
	Store        *bool     `yaml:"store"`
	DBPath       string    `yaml:"db_path"`
	LogLevel     string    `yaml:"log_level"`
	AWS          AWSConfig `yaml:"aws"`
}

// AWSConfig holds settings for s3:// locations.
type AWSConfig struct {
	Profile    string `yaml:"profile"`
	Region     string `yaml:"region"`
	S3Endpoint string `yaml:"s3_endpoint"`
}

type service struct {
	lookupEnv func(string) (string, bool)
}

// Service is the interface for configuration resolution.
type Service interface {
	// Resolve layers flags over environment, env file and config file values.
	Resolve(flags model.Flags) (model.Flags, error)
}
