package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaympqwer/TASK-MASTER/internal/server/config"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/repositories/repomanager"
)

func newSvcForPresign() *UserService {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.S3Region = "us-east-1"
	cfg.S3BaseEndpoint = "http://127.0.0.1:9000"
	cfg.S3Bucket = "avatars"
	cfg.S3RootUser = "minio"
	cfg.S3RootPassword = "minio123"
	return NewUserService(nil, repomanager.NewMemoryRepositoryManager(), cfg)
}

func stubPresignSeams(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func TestAvatarUploadURL(t *testing.T) {
	svc := newSvcForPresign()
	stubPresignSeams(t)

	var capturedBucket, capturedKey string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		capturedBucket = *in.Bucket
		capturedKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/signed-put"}, nil
	}

	key, url, err := svc.AvatarUploadURL(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/signed-put", url)
	assert.Equal(t, key, capturedKey)
	assert.Equal(t, "avatars", capturedBucket)
	assert.True(t, strings.HasPrefix(key, "avatars/user1/"))
}

func TestAvatarUploadURLKeysAreUnique(t *testing.T) {
	svc := newSvcForPresign()
	stubPresignSeams(t)

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/signed-put"}, nil
	}

	k1, _, err := svc.AvatarUploadURL(context.Background(), "user1")
	require.NoError(t, err)
	k2, _, err := svc.AvatarUploadURL(context.Background(), "user1")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestAvatarDownloadURL(t *testing.T) {
	svc := newSvcForPresign()
	stubPresignSeams(t)

	var capturedKey string
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		capturedKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/signed-get"}, nil
	}

	url, err := svc.AvatarDownloadURL(context.Background(), "avatars/user1/2025/1/2/abc")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/signed-get", url)
	assert.Equal(t, "avatars/user1/2025/1/2/abc", capturedKey)
}

func TestSetAvatarOverwritesPreviousKey(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	m := repomanager.NewMemoryRepositoryManager()
	svc := NewUserService(nil, m, cfg)

	user, err := svc.Signup(ctx, "Jane Doe", "jane@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.SetAvatar(ctx, user.ID, "avatars/user1/first")
	require.NoError(t, err)
	_, err = svc.SetAvatar(ctx, user.ID, "avatars/user1/second")
	require.NoError(t, err)

	raw, err := m.Users(nil).GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "avatars/user1/second", raw.AvatarURL)
}

func TestGetByIDPresignsAvatarURL(t *testing.T) {
	ctx := context.Background()
	svc := newSvcForPresign()
	stubPresignSeams(t)

	user, err := svc.Signup(ctx, "Jane Doe", "jane@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.SetAvatar(ctx, user.ID, "avatars/user1/abc")
	require.NoError(t, err)

	var capturedKey string
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		capturedKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/signed-get"}, nil
	}

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/signed-get", got.AvatarURL)
	assert.Equal(t, "avatars/user1/abc", capturedKey)

	raw, err := svc.repomanager.Users(nil).GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "avatars/user1/abc", raw.AvatarURL)
}

func TestAvatarURLsErrorFromClientFactory(t *testing.T) {
	svc := newSvcForPresign()
	stubPresignSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, _, err := svc.AvatarUploadURL(context.Background(), "user1")
	require.EqualError(t, err, "load-fail")

	_, err = svc.AvatarDownloadURL(context.Background(), "some-key")
	require.EqualError(t, err, "load-fail")
}
