package main

import (
	"context"
	"fmt"

	"github.com/thirukguru/version-sync/model"
	awsconfig "github.com/thirukguru/version-sync/service/aws_config"
	"github.com/thirukguru/version-sync/service/location"
	"github.com/thirukguru/version-sync/service/orchestrator"
	"github.com/thirukguru/version-sync/service/output"
	"github.com/thirukguru/version-sync/service/storage"
	"github.com/thirukguru/version-sync/service/versionsync"
)

func runSync(ctx context.Context, flags model.Flags, versionInfo model.VersionInfo) error {
	var storageService storage.Service
	if flags.Store {
		var err error
		storageService, err = openStorage(flags.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer storageService.Close()
	}

	orchestratorService := orchestrator.NewService(
		versionsync.NewService(newLocationService(flags)),
		output.NewService(flags.Output),
		storageService,
		versionInfo,
	)
	return orchestratorService.Orchestrate(ctx, flags)
}

// newLocationService serves local paths directly; the S3 client is only built
// when an s3:// location is used.
func newLocationService(flags model.Flags) location.Service {
	return location.NewService(location.NewS3StoreFactory(awsconfig.NewService(), s3OptionsFromFlags(flags)))
}

func s3OptionsFromFlags(flags model.Flags) location.S3Options {
	return location.S3Options{
		AWS: awsconfig.Options{
			Region:  flags.AWSRegion,
			Profile: flags.AWSProfile,
		},
		Endpoint: flags.S3Endpoint,
	}
}
