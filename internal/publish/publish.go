// Package publish uploads rendered maps to an S3 bucket so they can be
// embedded in static pages.
package publish

import (
	"bytes"
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Bucket string `env:"PUBLISH_BUCKET"`
	Prefix string `env:"PUBLISH_PREFIX" envDefault:"collaboration-map"`
	Region string `env:"AWS_REGION" envDefault:"us-east-1"`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}

// ObjectPutter is the part of the S3 client the Publisher needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Publisher struct {
	client ObjectPutter
	conf   Config
}

func New(client ObjectPutter, conf Config) *Publisher {
	return &Publisher{client: client, conf: conf}
}

// NewFromEnv builds a Publisher on the default AWS credential chain.
func NewFromEnv(ctx context.Context, conf Config) (*Publisher, error) {
	if conf.Bucket == "" {
		return nil, errors.New("no bucket configured (PUBLISH_BUCKET)")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(conf.Region))
	if err != nil {
		return nil, errors.Wrap(err, "unable to load SDK config")
	}
	return New(s3.NewFromConfig(awsCfg), conf), nil
}

var contentTypes = map[string]string{
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".json": "application/json",
	".yaml": "application/yaml",
}

// Key is the object key name is stored under.
func (p *Publisher) Key(name string) string {
	return path.Join(p.conf.Prefix, name)
}

// Put uploads data as name below the configured prefix and returns the key.
func (p *Publisher) Put(ctx context.Context, name string, data []byte) (string, error) {
	key := p.Key(name)
	contentType, ok := contentTypes[path.Ext(name)]
	if !ok {
		contentType = "application/octet-stream"
	}
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.conf.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	})
	if err != nil {
		return "", errors.Wrapf(err, "put s3://%s/%s", p.conf.Bucket, key)
	}
	log.Ctx(ctx).Info().Msgf("published s3://%s/%s (%d bytes)", p.conf.Bucket, key, len(data))
	return key, nil
}
