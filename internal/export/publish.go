package export

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/config"
)

const (
	pdfContentType = "application/pdf"
	linkExpiry     = 24 * time.Hour
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Publisher uploads exported documents to S3 and hands out presigned
// download links.
type Publisher struct {
	client    objectPutter
	presigner objectPresigner
	bucket    string
	expiry    time.Duration
	log       *zap.Logger
}

// NewPublisher returns nil when S3 is not configured.
func NewPublisher(s3Config *config.S3Config, log *zap.Logger) *Publisher {
	if s3Config == nil {
		return nil
	}
	return &Publisher{
		client:    s3Config.Client,
		presigner: s3.NewPresignClient(s3Config.Client),
		bucket:    s3Config.BucketName,
		expiry:    linkExpiry,
		log:       log.Named("publisher"),
	}
}

// Publish stores a PDF under the scope's export prefix and returns a link
// valid for one day.
func (p *Publisher) Publish(ctx context.Context, scopeID, fileName string, data []byte) (string, error) {
	key := path.Join("exports", scopeID, uuid.NewString(), fileName)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(p.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String(pdfContentType),
		ContentDisposition: aws.String(mime.FormatMediaType("attachment", map[string]string{"filename": fileName})),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	req, err := p.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign export link: %w", err)
	}

	p.log.Info("published export", zap.String("key", key), zap.Int("bytes", len(data)))
	return req.URL, nil
}
