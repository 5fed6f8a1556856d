package kbsource

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloo-solutions/secubot/internal/domain"
)

// S3SourceConfig holds configuration for S3Source
type S3SourceConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Prefix          string
	UsePathStyle    bool
}

// S3Source yields markdown documents stored under a bucket prefix, for
// deployments that keep the security guideline corpus in S3-compatible
// storage instead of the repository tree.
type S3Source struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Source creates a new S3Source with the given configuration
func NewS3Source(ctx context.Context, cfg S3SourceConfig) (*S3Source, error) {
	// Custom resolver for S3-compatible endpoints
	customResolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			if cfg.Endpoint != "" {
				return aws.Endpoint{
					URL:               cfg.Endpoint,
					HostnameImmutable: true,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		},
	)

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		config.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Source{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Documents lists objects under the prefix and returns one Document per
// .md object, keyed by the object's base name.
func (s *S3Source) Documents(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list knowledge objects: %w", err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, ".md") {
				continue
			}

			text, err := s.getObject(ctx, key)
			if err != nil {
				return nil, err
			}

			docs = append(docs, domain.Document{
				ID:   path.Base(key),
				Text: text,
			})
			log.Printf("loaded security doc from s3: %s", key)
		}
	}

	return docs, nil
}

func (s *S3Source) getObject(ctx context.Context, key string) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return string(body), nil
}
