package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"foodgram-backend/internal/utils"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var ErrInvalidImagePayload = errors.New("image must be a base64 data URI")

type (
	// ImageStorage stores an uploaded image and returns a public reference
	// to it. The caller only ever keeps the returned URL.
	ImageStorage interface {
		UploadBase64Image(ctx context.Context, folder string, dataURI string) (string, error)
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() ImageStorage {
	region := utils.GetConfig("AWS_S3_REGION")

	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to load AWS config: %v", err))
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: region,
	}
}

// UploadBase64Image accepts a "data:image/<ext>;base64,<payload>" URI,
// decodes it and stores it under folder/<uuid>.<ext>.
func (a *awsS3) UploadBase64Image(ctx context.Context, folder string, dataURI string) (string, error) {
	if !strings.HasPrefix(dataURI, "data:image/") {
		return "", ErrInvalidImagePayload
	}

	meta, payload, found := strings.Cut(dataURI, ";base64,")
	if !found {
		return "", ErrInvalidImagePayload
	}
	ext := strings.TrimPrefix(meta, "data:image/")

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidImagePayload
	}

	key := fmt.Sprintf("%s/%s.%s", folder, uuid.New().String(), ext)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(decoded),
		ContentType: aws.String("image/" + ext),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key), nil
}
