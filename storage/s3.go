package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AvatarStore uploads user avatars to an S3 bucket and returns public URLs.
type AvatarStore struct {
	client *s3.Client
	bucket string
	region string
}

func NewAvatarStore(bucket, region, accessKey, secretKey string) *AvatarStore {
	cfg := aws.Config{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	}
	return &AvatarStore{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

// Upload stores the avatar under avatars/<userID><ext> and returns its URL.
// Repeated uploads for the same user overwrite the previous object.
func (a *AvatarStore) Upload(ctx context.Context, userID string, body io.Reader, contentType string) (string, error) {
	key := path.Join("avatars", userID+extensionFor(contentType))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
