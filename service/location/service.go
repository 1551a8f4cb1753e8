// Package location provides byte-level access to the records being synchronised.
package location

import (
	"context"
	"sync"
)

type service struct {
	files Service
	newS3 StoreFactory

	once  sync.Once
	s3    Service
	s3Err error
}

// NewService creates a location service. newS3 may be nil when s3:// locations
// are not needed; it is called at most once.
func NewService(newS3 StoreFactory) Service {
	return &service{files: NewFileStore(), newS3: newS3}
}

func (s *service) Read(ctx context.Context, location string) ([]byte, error) {
	store, err := s.storeFor(ctx, location)
	if err != nil {
		return nil, err
	}
	return store.Read(ctx, location)
}

func (s *service) Write(ctx context.Context, location string, data []byte, opts WriteOptions) error {
	store, err := s.storeFor(ctx, location)
	if err != nil {
		return err
	}
	return store.Write(ctx, location, data, opts)
}

func (s *service) storeFor(ctx context.Context, location string) (Service, error) {
	if !IsS3(location) {
		return s.files, nil
	}
	if s.newS3 == nil {
		return nil, ErrS3Unavailable
	}
	s.once.Do(func() {
		s.s3, s.s3Err = s.newS3(ctx)
	})
	return s.s3, s.s3Err
}
