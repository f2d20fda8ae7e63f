// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/ik5/soundprep/config"
)

// NewMinio connects a MinIO client for cfg. No request is made until the
// client is used.
func NewMinio(cfg config.Storage) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client for %s: %w", cfg.Endpoint, err)
	}

	return client, nil
}

// NewPublisher builds a Publisher on a MinIO client for cfg.
func NewPublisher(cfg config.Storage, log *zap.Logger) (*Publisher, error) {
	client, err := NewMinio(cfg)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		Store:  client,
		Bucket: cfg.Bucket,
		Region: cfg.Region,
		Prefix: cfg.Prefix,
		Logger: log,
	}, nil
}
