package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"daily-diet-backend/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const avatarURLExpiry = 5 * time.Minute

// ObjectPresigner issues pre-signed S3 PUT URLs. Satisfied by s3.PresignClient.
type ObjectPresigner interface {
	PresignPutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// AvatarService issues pre-signed upload URLs for user avatars and records
// the resulting object URL on the user.
type AvatarService struct {
	userRepo  UserRepository
	presigner ObjectPresigner
	bucket    string
	region    string
	endpoint  string
}

// NewAvatarService creates a new avatar service
func NewAvatarService(userRepo UserRepository, awsRegion, s3Bucket, accessKey, secretKey, endpoint string) (*AvatarService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(awsRegion),
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &AvatarService{
		userRepo:  userRepo,
		presigner: s3.NewPresignClient(s3Client),
		bucket:    s3Bucket,
		region:    awsRegion,
		endpoint:  endpoint,
	}, nil
}

// AvatarUploadResponse represents the response with pre-signed URL
type AvatarUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

// RequestUpload generates a pre-signed PUT URL for an avatar and stores the
// public object URL as the user's image reference.
func (s *AvatarService) RequestUpload(ctx context.Context, userID, filename, contentType string) (*AvatarUploadResponse, error) {
	ext := path.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), ext)

	request, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = avatarURLExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	imageURL := s.objectURL(key)
	if err := s.userRepo.UpdateImage(ctx, userID, imageURL); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user image: %w", err)
	}

	return &AvatarUploadResponse{
		UploadURL: request.URL,
		ImageURL:  imageURL,
		ExpiresIn: int(avatarURLExpiry.Seconds()),
	}, nil
}

func (s *AvatarService) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.endpoint, "/"), s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
