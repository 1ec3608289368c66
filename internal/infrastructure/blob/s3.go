package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config parámetros del bucket. Endpoint vacío = AWS; con valor = MinIO, R2, etc.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
	PublicURL string // prefijo de las URLs devueltas; vacío = se arma con endpoint/bucket
}

// S3Store guarda los objetos en un bucket S3.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Store carga las credenciales de la cadena por defecto de AWS.
func NewS3Store(ctx context.Context, cfg S3Config, optFns ...func(*s3.Options)) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob s3: bucket requerido")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("blob s3: configuración aws: %w", err)
	}
	opts := append([]func(*s3.Options){func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}}, optFns...)
	client := s3.NewFromConfig(awsCfg, opts...)
	return &S3Store{client: client, bucket: cfg.Bucket, publicURL: publicBase(cfg, region)}, nil
}

// Put sube el objeto con su tipo de contenido.
func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(clean),
		Body:   r,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("blob s3: put %s: %w", clean, err)
	}
	return s.publicURL + "/" + clean, nil
}

// publicBase URL base de los objetos del bucket.
func publicBase(cfg S3Config, region string) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	if cfg.Endpoint != "" {
		u, err := url.Parse(strings.TrimRight(cfg.Endpoint, "/"))
		if err == nil && u.Host != "" {
			if cfg.PathStyle {
				return u.String() + "/" + cfg.Bucket
			}
			u.Host = cfg.Bucket + "." + u.Host
			return u.String()
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
}
