package model

// Flags represents the command line flags.
type Flags struct {
	Source       string
	Target       string
	SourceField  string
	TargetField  string
	SourceFormat string
	TargetFormat string
	DryRun       bool
	Check        bool
	Atomic       bool
	FinalNewline bool
	Version      bool
	Output       string
	Store        bool
	DBPath       string
	ConfigPath   string
	EnvFile      string
	LogLevel     string
	AWSProfile   string
	AWSRegion    string
	S3Endpoint   string
}
