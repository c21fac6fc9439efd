package spaces

import (
	"context"
	"errors"
	"io"

	"github.com/DMarby/bmpfilter/internal/storage"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Provider implements an S3 compatible bitmap storage, such as digitalocean spaces
type Provider struct {
	spaces *s3.S3
	space  string
}

// New returns a new Provider instance
func New(ctx context.Context, space, endpoint, accessKey, secretKey string, forcePathStyle bool) (*Provider, error) {
	spacesSession, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String("us-east-1"), // Needs to be us-east-1 for Spaces, or it'll fail
		S3ForcePathStyle: aws.Bool(forcePathStyle),
	})
	if err != nil {
		return nil, err
	}

	spaces := s3.New(spacesSession)

	// Make sure the space exists and is reachable with the given credentials
	_, err = spaces.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(space),
	})
	if err != nil {
		return nil, err
	}

	return &Provider{
		spaces: spaces,
		space:  space,
	}, nil
}

// Get returns the bitmap data for an image id
func (p *Provider) Get(ctx context.Context, id string) ([]byte, error) {
	key, err := storage.Key(id)
	if err != nil {
		return nil, err
	}

	output, err := p.spaces.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.space),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, storage.ErrNotFound
		}

		return nil, err
	}
	defer output.Body.Close()

	return io.ReadAll(output.Body)
}
