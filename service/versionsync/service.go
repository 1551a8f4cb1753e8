// Package versionsync copies the version field of a source record into a target record.
package versionsync

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/thirukguru/version-sync/service/document"
	"github.com/thirukguru/version-sync/service/location"
	"github.com/thirukguru/version-sync/shared/logging"
)

// NewService creates a version synchronizer reading and writing through locations.
func NewService(locations location.Service) Service {
	return &service{locations: locations}
}

func (s *service) Sync(ctx context.Context, req Request) (Result, error) {
	req = req.WithDefaults()
	logger := logging.WithComponent(ctx, "versionsync")

	sourceFormat, err := document.DetectFormat(req.Source, req.SourceFormat)
	if err != nil {
		return Result{}, fmt.Errorf("%w: source: %w", ErrInvalidRequest, err)
	}
	targetFormat, err := document.DetectFormat(req.Target, req.TargetFormat)
	if err != nil {
		return Result{}, fmt.Errorf("%w: target: %w", ErrInvalidRequest, err)
	}
	if targetFormat == document.FormatTOML {
		return Result{}, fmt.Errorf("%w: target %s: %w", ErrInvalidRequest, req.Target, document.ErrReadOnlyFormat)
	}

	sourceData, targetData, err := s.readBoth(ctx, req.Source, req.Target)
	if err != nil {
		return Result{}, err
	}
	logger.Debug().Str("source", req.Source).Int("source_bytes", len(sourceData)).
		Str("target", req.Target).Int("target_bytes", len(targetData)).Msg("records read")

	version, err := sourceVersion(req, sourceFormat, sourceData)
	if err != nil {
		return Result{}, err
	}

	targetDoc, err := parse(req.Target, targetFormat, targetData, document.Options{FinalNewline: req.FinalNewline})
	if err != nil {
		return Result{}, err
	}

	targetPath := document.SplitPath(req.TargetField)
	res := Result{Version: version, Changed: true}
	if prev, ok := targetDoc.Lookup(targetPath); ok {
		res.HadVersion = true
		if str, isString := prev.(string); isString {
			res.PreviousVersion = str
			res.Changed = str != version
		} else {
			res.PreviousVersion, _ = document.ScalarString(prev)
		}
	}

	if req.Check {
		if res.Changed {
			return res, ErrOutOfSync
		}
		return res, nil
	}

	if err := targetDoc.SetString(targetPath, version); err != nil {
		if errors.Is(err, document.ErrNotMapping) || errors.Is(err, document.ErrSharedValue) {
			return Result{}, &SchemaError{Location: req.Target, Field: req.TargetField, Reason: "cannot be set", Err: err}
		}
		return Result{}, err
	}
	content, err := targetDoc.Encode()
	if err != nil {
		return Result{}, fmt.Errorf("encode %s: %w", req.Target, err)
	}
	res.Content = content

	if req.DryRun {
		logger.Info().Str("target", req.Target).Str("version", version).Msg("dry run, target not written")
		return res, nil
	}

	if err := s.locations.Write(ctx, req.Target, content, location.WriteOptions{Atomic: req.Atomic}); err != nil {
		return Result{}, &IOError{Op: "write", Location: req.Target, Err: err}
	}
	res.Written = true
	logger.Info().
		Str("target", req.Target).
		Str("previous_version", res.PreviousVersion).
		Str("version", version).
		Bool("atomic", req.Atomic).
		Msg("target version updated")
	return res, nil
}

// readBoth reads both records concurrently; nothing is written until both succeed.
func (s *service) readBoth(ctx context.Context, source, target string) ([]byte, []byte, error) {
	var sourceData, targetData []byte
	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := s.locations.Read(groupCtx, source)
		if err != nil {
			return &IOError{Op: "read", Location: source, Err: err}
		}
		sourceData = data
		return nil
	})
	g.Go(func() error {
		data, err := s.locations.Read(groupCtx, target)
		if err != nil {
			return &IOError{Op: "read", Location: target, Err: err}
		}
		targetData = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sourceData, targetData, nil
}

func sourceVersion(req Request, format document.Format, data []byte) (string, error) {
	doc, err := parse(req.Source, format, data, document.Options{})
	if err != nil {
		return "", err
	}
	value, ok := doc.Lookup(document.SplitPath(req.SourceField))
	if !ok {
		return "", &SchemaError{Location: req.Source, Field: req.SourceField, Reason: "is missing"}
	}
	version, ok := value.(string)
	if !ok {
		return "", &SchemaError{Location: req.Source, Field: req.SourceField, Reason: fmt.Sprintf("must be a string, got %s", document.Kind(value))}
	}
	return version, nil
}

func parse(loc string, format document.Format, data []byte, opts document.Options) (document.Document, error) {
	doc, err := document.Parse(format, data, opts)
	if err == nil {
		return doc, nil
	}
	if errors.Is(err, document.ErrNotMapping) {
		return nil, &SchemaError{Location: loc, Reason: "record must be a mapping", Err: err}
	}
	return nil, &ParseError{Location: loc, Format: string(format), Err: err}
}
