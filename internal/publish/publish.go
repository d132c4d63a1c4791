// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sidiropulos/dmpsetup/internal/dist"
	"github.com/sidiropulos/dmpsetup/internal/metadata"
)

// PutObjectAPI is the slice of the S3 client that Publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Publisher uploads artifacts for one record.
type Publisher struct {
	Client PutObjectAPI
	Bucket string
	Prefix string
}

// Upload is one completed object.
type Upload struct {
	Bucket string `json:"bucket" yaml:"bucket"`
	Key    string `json:"key" yaml:"key"`
	ETag   string `json:"etag,omitempty" yaml:"etag,omitempty"`
}

// URI returns the s3:// form of the upload.
func (u Upload) URI() string {
	return "s3://" + u.Bucket + "/" + u.Key
}

// Key returns the object key for file under rec.
func (p *Publisher) Key(rec *metadata.Record, file string) string {
	return path.Join(strings.Trim(p.Prefix, "/"), rec.Name, rec.Version, file)
}

// Publish uploads each artifact in order and stops at the first failure. The
// uploads completed before the failure are returned with the error.
func (p *Publisher) Publish(ctx context.Context, rec *metadata.Record, artifacts []*dist.Artifact) ([]Upload, error) {
	if p.Client == nil {
		return nil, errors.New("no S3 client")
	}
	if p.Bucket == "" {
		return nil, errors.New("no bucket given")
	}

	var uploads []Upload
	for _, a := range artifacts {
		u, err := p.put(ctx, rec, a)
		if err != nil {
			return uploads, err
		}
		log.Infof("uploaded %s", u.URI())
		uploads = append(uploads, u)
	}
	return uploads, nil
}

func (p *Publisher) put(ctx context.Context, rec *metadata.Record, a *dist.Artifact) (Upload, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		return Upload{}, fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	u := Upload{Bucket: p.Bucket, Key: p.Key(rec, filepath.Base(a.Path))}
	in := &s3v2.PutObjectInput{
		Bucket:        awsv2.String(u.Bucket),
		Key:           awsv2.String(u.Key),
		Body:          f,
		ContentLength: awsv2.Int64(a.Size),
		ContentType:   awsv2.String(contentType(a.Format)),
		Metadata: map[string]string{
			"sha256":  a.SHA256,
			"format":  a.Format,
			"project": rec.Name,
			"version": rec.Version,
		},
	}

	out, err := p.Client.PutObject(ctx, in)
	if err != nil {
		return Upload{}, fmt.Errorf("failed to upload %s: %w", u.URI(), err)
	}
	u.ETag = strings.Trim(awsv2.ToString(out.ETag), `"`)
	return u, nil
}

func contentType(format string) string {
	switch format {
	case "sdist":
		return "application/gzip"
	case "wheel":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
