// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/sidiropulos/dmpsetup/internal/aws"
	"github.com/sidiropulos/dmpsetup/internal/log"
	"github.com/sidiropulos/dmpsetup/internal/meta"
	"github.com/sidiropulos/dmpsetup/internal/output"
	"github.com/sidiropulos/dmpsetup/internal/publish"
)

// newPutClient builds the S3 client for publish. Tests replace it.
var newPutClient = func(ctx context.Context, opts ...aws.Option) (publish.PutObjectAPI, error) {
	cfg, err := aws.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return aws.NewS3(cfg, opts...), nil
}

// publishCommandAction builds the artifacts and uploads them to S3.
func publishCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args[1:])

	bucket := cmd.String("bucket")
	if bucket == "" {
		return errors.New("--bucket is required")
	}

	rec, artifacts, err := BuildArtifacts(ctx, cmd)
	if err != nil {
		return err
	}

	client, err := newPutClient(ctx,
		aws.WithProfile(cmd.String("profile")),
		aws.WithRegion(cmd.String("region")),
		aws.WithEndpoint(cmd.String("endpoint")),
	)
	if err != nil {
		return err
	}

	p := &publish.Publisher{Client: client, Bucket: bucket, Prefix: cmd.String("prefix")}
	uploads, err := p.Publish(ctx, rec, artifacts)
	if err != nil {
		return err
	}

	opts := OutputOptions(cmd)
	if opts.Format != "text" {
		return output.Encode(stdout(cmd), uploads, opts.Format)
	}
	uris := make([]string, 0, len(uploads))
	for _, u := range uploads {
		uris = append(uris, u.URI())
	}
	return output.List(stdout(cmd), uris, opts)
}

// publishCommandBuilder constructs the cli.Command for "publish".
func publishCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "publish",
		Usage:     "build the artifacts and upload them to S3",
		UsageText: "dmpsetup publish [RootDir] --bucket BUCKET [options]",
		Flags: append(
			NewDistFlags("publish", meta.Config.Source),
			NewS3Flags("publish", meta.Config.Source)...,
		),
		Action:  publishCommandAction,
		Meta:    meta,
		Project: true,
		Output:  true,
	}).Build()
}
