package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

var errMissingCredentials = errors.New("credentials file not found")

const credentialsHint = `create an access key for the destination account in the AWS console:
  IAM > Users > <user> > Security credentials > Create access key
and save it in shared credentials format:
  [default]
  aws_access_key_id = ...
  aws_secret_access_key = ...`

type CloudConfig struct {
	cfg         aws.Config
	region      string
	profile     string
	credentials string
}

type Option func(*CloudConfig)

func withRegion(region string) Option {
	return func(cc *CloudConfig) {
		cc.region = region
	}
}

func withProfile(profile string) Option {
	return func(cc *CloudConfig) {
		cc.profile = profile
	}
}

func withCredentialsFile(path string) Option {
	return func(cc *CloudConfig) {
		cc.credentials = path
	}
}

func initConfig(ctx context.Context, opts ...Option) (*CloudConfig, error) {
	defaultOpts := &CloudConfig{
		cfg:     aws.Config{},
		region:  "",
		profile: "",
	}

	for _, opt := range opts {
		opt(defaultOpts)
	}

	if defaultOpts.credentials == "" {
		return nil, fmt.Errorf("%w: no path configured\n%s", errMissingCredentials, credentialsHint)
	}
	if _, err := os.Stat(defaultOpts.credentials); err != nil {
		return nil, fmt.Errorf("%w: %s\n%s", errMissingCredentials, defaultOpts.credentials, credentialsHint)
	}

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithSharedCredentialsFiles([]string{defaultOpts.credentials}),
		config.WithSharedConfigProfile(defaultOpts.profile),
		config.WithRegion(defaultOpts.region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return nil, fmt.Errorf("reading credentials from %s: %w\n%s", defaultOpts.credentials, err, credentialsHint)
	}

	defaultOpts.cfg = cfg
	return defaultOpts, nil
}

func (c *CloudConfig) stablishClientWith(opts ...ResourceOpt) *ResourceConfig {
	o := &ResourceConfig{}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

type ResourceConfig struct {
	s3  *s3.Client
	sts *sts.Client
}

type ResourceOpt func(*ResourceConfig)

// s3Service builds the destination client. A non-empty endpoint switches to
// path-style addressing for s3 compatible stores.
func s3Service(cfg aws.Config, endpoint string) ResourceOpt {
	return func(rc *ResourceConfig) {
		rc.s3 = s3.NewFromConfig(cfg, func(o *s3.Options) {
			if endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
				o.UsePathStyle = true
			}
		})
	}
}

func stsService(cfg aws.Config) ResourceOpt {
	return func(rc *ResourceConfig) {
		s := sts.NewFromConfig(cfg)
		rc.sts = s
	}
}
