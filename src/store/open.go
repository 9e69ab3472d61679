package store

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Driver names a storage backend.
type Driver string

const (
	DriverFile   Driver = "file"
	DriverSQLite Driver = "sqlite"
	DriverS3     Driver = "s3"
)

// Environment variables:
//   EDSD_STORE_DRIVER=file|sqlite|s3 (default file)
//   EDSD_STORE_PATH=<path> (file and sqlite; default data_store.json / data_store.db)
//   EDSD_STORE_S3_BUCKET=<bucket> (required for s3)
//   EDSD_STORE_S3_KEY=<key> (default edsd/data_store.json)
//   EDSD_STORE_S3_REGION=<region> (default us-east-1)
//   EDSD_STORE_S3_ENDPOINT=<url> (optional, for MinIO)
//   EDSD_STORE_S3_PATH_STYLE=true|false

// Open selects a backend from the process environment.
func Open(ctx context.Context) (Backend, error) {
	return OpenWith(ctx, os.Getenv)
}

// OpenWith selects a backend using getenv for lookups.
func OpenWith(ctx context.Context, getenv func(string) string) (Backend, error) {
	driver := Driver(strings.ToLower(strings.TrimSpace(getenv("EDSD_STORE_DRIVER"))))
	if driver == "" {
		driver = DriverFile
	}
	path := getenv("EDSD_STORE_PATH")
	switch driver {
	case DriverFile:
		return NewFileBackend(path), nil
	case DriverSQLite:
		return NewSQLiteBackend(path)
	case DriverS3:
		bucket := getenv("EDSD_STORE_S3_BUCKET")
		if bucket == "" {
			return nil, fmt.Errorf("EDSD_STORE_S3_BUCKET required for s3 driver")
		}
		return NewS3Backend(ctx, S3Config{
			Bucket:    bucket,
			Key:       getenv("EDSD_STORE_S3_KEY"),
			Region:    getenv("EDSD_STORE_S3_REGION"),
			Endpoint:  getenv("EDSD_STORE_S3_ENDPOINT"),
			PathStyle: strings.EqualFold(getenv("EDSD_STORE_S3_PATH_STYLE"), "true"),
		})
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

// Close releases backend resources when the backend holds any.
func Close(b Backend) error {
	if c, ok := b.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
