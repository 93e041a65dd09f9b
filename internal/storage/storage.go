package storage

import (
	"errors"

	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/casdoor/oss"
	"github.com/casdoor/oss/filesystem"
	"github.com/casdoor/oss/s3"

	"github.com/ecotrash/todo-backend/internal/config"
)

// New selects the attachment storage backend from configuration. The
// filesystem backend is the default and needs only a folder; aws-s3 expects
// credentials, region and bucket.
func New(cfg *config.Config) (oss.StorageInterface, error) {
	switch cfg.StorageProvider {
	case "filesystem":
		return filesystem.New(cfg.StorageFolder), nil
	case "aws-s3":
		return s3.New(&s3.Config{
			AccessID:  cfg.StorageID,
			AccessKey: cfg.StorageSecret,
			Region:    cfg.StorageRegion,
			Bucket:    cfg.StorageBucket,
			Endpoint:  cfg.StorageEndpoint,
			ACL:       awss3.BucketCannedACLPrivate,
		}), nil
	default:
		return nil, errors.New("unsupported storage provider: " + cfg.StorageProvider)
	}
}
