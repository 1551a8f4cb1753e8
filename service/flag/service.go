// Package flag parses the command line into model.Flags.
package flag

import (
	"os"

	"github.com/spf13/pflag"
	"github.com/thirukguru/version-sync/model"
)

// NewService creates a new flag service.
func NewService() Service {
	return &service{}
}

// GetParsedFlags parses and returns the command-line flags. String flags
// default to empty so that environment and config file values can fill them.
func (s *service) GetParsedFlags() (model.Flags, error) {
	source := pflag.StringP("source", "s", "", "Record the version is read from (default elm.json)")
	target := pflag.StringP("target", "t", "", "Record whose version is overwritten (default package.json)")
	sourceField := pflag.String("source-field", "", "Dotted path of the source version field (default version)")
	targetField := pflag.String("target-field", "", "Dotted path of the target version field (default version)")
	sourceFormat := pflag.String("source-format", "", "Source format: json, yaml or toml (default from extension)")
	targetFormat := pflag.String("target-format", "", "Target format: json or yaml (default from extension)")
	dryRun := pflag.Bool("dry-run", false, "Compute the new target without writing it")
	check := pflag.Bool("check", false, "Exit non-zero when the target version differs from the source")
	atomic := pflag.Bool("atomic", false, "Write to a temporary file and rename it over the target")
	finalNewline := pflag.Bool("final-newline", false, "End JSON output with a newline")
	version := pflag.BoolP("version", "v", false, "Show version information")
	output := pflag.StringP("output", "o", "", "Output format (quiet, table, or json)")
	store := pflag.Bool("store", false, "Record the sync in the local SQLite history")
	dbPath := pflag.String("db-path", "", "Custom SQLite database path (default ~/.version-sync/history.db)")
	configPath := pflag.String("config-path", "", "Path to a version-sync YAML config file")
	envFile := pflag.String("env-file", "", "Load VERSION_SYNC_* variables from a dotenv file")
	logLevel := pflag.String("log-level", "", "Log level (debug, info, warn, error)")
	awsProfile := pflag.String("aws-profile", "", "AWS profile for s3:// locations")
	awsRegion := pflag.String("aws-region", "", "AWS region for s3:// locations")
	s3Endpoint := pflag.String("s3-endpoint", "", "Custom S3 endpoint, e.g. a MinIO server")

	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return model.Flags{}, err
	}

	flags := model.Flags{
		Source:       *source,
		Target:       *target,
		SourceField:  *sourceField,
		TargetField:  *targetField,
		SourceFormat: *sourceFormat,
		TargetFormat: *targetFormat,
		DryRun:       *dryRun,
		Check:        *check,
		Atomic:       *atomic,
		FinalNewline: *finalNewline,
		Version:      *version,
		Output:       *output,
		Store:        *store,
		DBPath:       *dbPath,
		ConfigPath:   *configPath,
		EnvFile:      *envFile,
		LogLevel:     *logLevel,
		AWSProfile:   *awsProfile,
		AWSRegion:    *awsRegion,
		S3Endpoint:   *s3Endpoint,
	}

	return flags, nil
}
