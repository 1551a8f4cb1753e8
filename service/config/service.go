// Package config resolves settings from flags, the environment and an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thirukguru/version-sync/model"
	"github.com/thirukguru/version-sync/shared/logging"
)

// NewService creates a config service reading the process environment.
func NewService() Service {
	return &service{lookupEnv: os.LookupEnv}
}

func (s *service) Resolve(flags model.Flags) (model.Flags, error) {
	if flags.EnvFile != "" {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(flags.EnvFile); err != nil {
			return flags, fmt.Errorf("failed to load env file %s: %w", flags.EnvFile, err)
		}
	}

	file, err := s.loadFile(flags.ConfigPath)
	if err != nil {
		return flags, err
	}

	out := flags
	out.Source = s.pick(flags.Source, "SOURCE", file.Source)
	out.Target = s.pick(flags.Target, "TARGET", file.Target)
	out.SourceField = s.pick(flags.SourceField, "SOURCE_FIELD", file.SourceField)
	out.TargetField = s.pick(flags.TargetField, "TARGET_FIELD", file.TargetField)
	out.SourceFormat = s.pick(flags.SourceFormat, "SOURCE_FORMAT", file.SourceFormat)
	out.TargetFormat = s.pick(flags.TargetFormat, "TARGET_FORMAT", file.TargetFormat)
	out.Output = s.pick(flags.Output, "OUTPUT", file.Output)
	out.DBPath = s.pick(flags.DBPath, "DB_PATH", file.DBPath)
	out.LogLevel = s.pick(flags.LogLevel, "LOG_LEVEL", file.LogLevel)
	out.AWSProfile = s.pick(flags.AWSProfile, "AWS_PROFILE", file.AWS.Profile)
	out.AWSRegion = s.pick(flags.AWSRegion, "AWS_REGION", file.AWS.Region)
	out.S3Endpoint = s.pick(flags.S3Endpoint, "S3_ENDPOINT", file.AWS.S3Endpoint)

	if out.Atomic, err = s.pickBool(flags.Atomic, "ATOMIC", file.Atomic); err != nil {
		return flags, err
	}
	if out.FinalNewline, err = s.pickBool(flags.FinalNewline, "FINAL_NEWLINE", file.FinalNewline); err != nil {
		return flags, err
	}
	if out.Store, err = s.pickBool(flags.Store, "STORE", file.Store); err != nil {
		return flags, err
	}

	level := out.LogLevel
	if level == "" {
		level, _ = s.lookupEnv("LOG_LEVEL")
	}
	if _, err := logging.ParseLevel(level); err != nil {
		return flags, err
	}

	if out.Output == "" {
		out.Output = DefaultOutput
	}
	switch out.Output {
	case "quiet", "table", "json":
	default:
		return flags, fmt.Errorf("unsupported output format %q (want quiet, table or json)", out.Output)
	}
	if out.Check && out.DryRun {
		return flags, errors.New("--check and --dry-run cannot be combined")
	}
	return out, nil
}

func (s *service) loadFile(path string) (FileConfig, error) {
	explicit := true
	if path == "" {
		path, _ = s.lookupEnv(envPrefix + "CONFIG")
	}
	if path == "" {
		path = DefaultConfigPath
		explicit = false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (s *service) pick(flagValue, envKey, fileValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v, ok := s.lookupEnv(envPrefix + envKey); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(fileValue)
}

// pickBool lets flags only switch options on; env and file values may set either state.
func (s *service) pickBool(flagValue bool, envKey string, fileValue *bool) (bool, error) {
	if flagValue {
		return true, nil
	}
	if v, ok := s.lookupEnv(envPrefix + envKey); ok && strings.TrimSpace(v) != "" {
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("invalid %s%s: %w", envPrefix, envKey, err)
		}
		return parsed, nil
	}
	if fileValue != nil {
		return *fileValue, nil
	}
	return false, nil
}
