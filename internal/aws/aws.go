// Copyright (c) 2026 The dmpsetup Authors.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sidiropulos/dmpsetup/internal/log"
)

// options holds the overrides applied on top of the shared config chain.
type options struct {
	profile  string
	region   string
	endpoint string
	retryer  func() awsv2.Retryer
}

// Option customizes config loading. With no options the usual chain applies
// (AWS_PROFILE, ~/.aws/config, env, IMDS).
type Option func(*options)

// WithProfile selects a shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion overrides the region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the S3 client at an S3-compatible store.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithRetryer replaces the SDK default retryer.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// loadOptions translates the collected overrides for config.LoadDefaultConfig.
func (o options) loadOptions() []func(*config.LoadOptions) error {
	var lo []func(*config.LoadOptions) error
	if o.profile != "" {
		lo = append(lo, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		lo = append(lo, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		lo = append(lo, config.WithRetryer(o.retryer))
	}
	return lo
}

// s3Options returns the client options implied by the overrides.
func (o options) s3Options() []func(*s3v2.Options) {
	if o.endpoint == "" {
		return nil
	}
	endpoint := o.endpoint
	return []func(*s3v2.Options){
		func(so *s3v2.Options) {
			so.BaseEndpoint = awsv2.String(endpoint)
			so.UsePathStyle = true
		},
	}
}

// LoadAWSConfig loads SDK v2 config with the given overrides.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	o := collect(opts)
	log.Debugf("aws config: profile=%q region=%q", o.profile, o.region)

	cfg, err := config.LoadDefaultConfig(ctx, o.loadOptions()...)
	if err != nil {
		return awsv2.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewS3 builds an S3 client from cfg. Only the endpoint override of opts is
// consulted here; the rest belong to LoadAWSConfig.
func NewS3(cfg awsv2.Config, opts ...Option) *s3v2.Client {
	o := collect(opts)
	if o.endpoint != "" {
		log.Debugf("s3 endpoint: %s", o.endpoint)
	}
	return s3v2.NewFromConfig(cfg, o.s3Options()...)
}
