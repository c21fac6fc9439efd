//go:build integration
// +build integration

package spaces_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/DMarby/bmpfilter/internal/storage"
	"github.com/DMarby/bmpfilter/internal/storage/spaces"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against an S3 compatible server such as minio, configured through the environment
func TestSpaces(t *testing.T) {
	endpoint := os.Getenv("SPACES_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://127.0.0.1:9000"
	}

	space := "bmpfilter-test"
	accessKey := os.Getenv("SPACES_ACCESS_KEY")
	secretKey := os.Getenv("SPACES_SECRET_KEY")

	ctx := context.Background()

	sess := session.Must(session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String("us-east-1"),
		S3ForcePathStyle: aws.Bool(true),
	}))
	client := s3.New(sess)

	client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{Bucket: aws.String(space)})
	_, err := client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(space),
		Key:    aws.String("1.bmp"),
		Body:   bytes.NewReader([]byte("BM")),
	})
	require.NoError(t, err)

	provider, err := spaces.New(ctx, space, endpoint, accessKey, secretKey, true)
	require.NoError(t, err)

	t.Run("Get an image by id", func(t *testing.T) {
		buf, err := provider.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "BM", string(buf))
	})

	t.Run("Returns error on a nonexistant image", func(t *testing.T) {
		_, err := provider.Get(ctx, "nonexistant")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
