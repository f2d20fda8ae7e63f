// SPDX-License-Identifier: EPL-2.0

// Package storage publishes finished output trees to S3-compatible object
// storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/ik5/soundprep/internal/progress"
	"github.com/ik5/soundprep/logger"
)

var ErrNoBucket = errors.New("no bucket configured")

// ObjectStore is the part of *minio.Client the publisher needs.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Upload is one published object.
type Upload struct {
	Key  string
	Size int64
}

// Publisher uploads local directories into Bucket under Prefix.
type Publisher struct {
	Store    ObjectStore
	Bucket   string
	Region   string
	Prefix   string
	Logger   *zap.Logger
	Progress progress.Factory
}

var contentTypes = map[string]string{
	".wav":  "audio/wav",
	".csv":  "text/csv",
	".json": "application/json",
}

// ContentType picks the object content type from the file extension.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}

	return "application/octet-stream"
}

// ObjectKey joins prefix and a slash-separated relative path.
func ObjectKey(prefix, rel string) string {
	return strings.TrimPrefix(path.Join(prefix, filepath.ToSlash(rel)), "/")
}

// EnsureBucket creates the bucket when it does not exist yet.
func (p *Publisher) EnsureBucket(ctx context.Context) error {
	if p.Bucket == "" {
		return ErrNoBucket
	}

	exists, err := p.Store.BucketExists(ctx, p.Bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", p.Bucket, err)
	}
	if exists {
		return nil
	}

	if err := p.Store.MakeBucket(ctx, p.Bucket, minio.MakeBucketOptions{Region: p.Region}); err != nil {
		return fmt.Errorf("creating bucket %s: %w", p.Bucket, err)
	}
	logger.Component(p.Logger, "publisher").Info("bucket created", zap.String("bucket", p.Bucket))

	return nil
}

// Publish uploads every regular file below dir. Keys are
// <Prefix>/<base of dir>/<path inside dir>, so publishing several output
// directories under one prefix keeps them apart.
func (p *Publisher) Publish(ctx context.Context, dir string) ([]Upload, error) {
	log := logger.Component(p.Logger, "publisher")

	if err := p.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	var files []string
	err := filepath.WalkDir(dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, name)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	prog := p.Progress
	if prog == nil {
		prog = progress.Nop{}
	}
	tracker := prog.Track("upload "+filepath.Base(dir), len(files))
	defer tracker.Done()

	base := ObjectKey(p.Prefix, filepath.Base(dir))
	uploads := make([]Upload, 0, len(files))

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return uploads, err
		}

		rel, err := filepath.Rel(dir, name)
		if err != nil {
			return uploads, fmt.Errorf("%s: %w", name, err)
		}

		key := ObjectKey(base, rel)
		info, err := p.Store.FPutObject(ctx, p.Bucket, key, name, minio.PutObjectOptions{
			ContentType: ContentType(name),
		})
		if err != nil {
			return uploads, fmt.Errorf("uploading %s: %w", key, err)
		}

		log.Debug("object uploaded", zap.String("key", key), zap.Int64("size", info.Size))
		uploads = append(uploads, Upload{Key: key, Size: info.Size})
		tracker.Increment()
	}

	log.Info("directory published",
		zap.String("dir", dir),
		zap.String("bucket", p.Bucket),
		zap.String("prefix", base),
		zap.Int("objects", len(uploads)),
	)

	return uploads, nil
}
