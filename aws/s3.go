package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// ListKeys walks every page of the bucket listing and returns the flat
// key list the catalog endpoint serves.
func (s *S3Client) ListKeys(ctx context.Context) ([]string, error) {
	keys := []string{}

	paginator := s3.NewListObjectsV2Paginator(s.C, &s3.ListObjectsV2Input{
		Bucket: s.Bucket,
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list bucket objects, %w", err)
		}

		for _, obj := range page.Contents {
			keys = append(keys, *obj.Key)
		}
	}

	return keys, nil
}

// PresignPut issues a time-limited URL authorizing a single direct
// write of key with the given content type.
func (s *S3Client) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := s.Presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      s.Bucket,
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign put for %q, %w", key, err)
	}

	return req.URL, nil
}

// DeleteBatch removes the given keys in one DeleteObjects call. It
// returns the keys the bucket confirmed gone and the keys that
// errored; both can be non-empty at once.
func (s *S3Client) DeleteBatch(ctx context.Context, keys []string) (deleted, errored []string, err error) {
	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for i := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: &keys[i]})
	}

	resp, err := s.C.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: s.Bucket,
		Delete: &types.Delete{
			Objects: objects,
		},
	})
	if err != nil {
		return nil, keys, fmt.Errorf("failed to delete objects, %w", err)
	}

	for _, v := range resp.Deleted {
		zap.L().Debug("Deleted item", zap.String("item", *v.Key))
		deleted = append(deleted, *v.Key)
	}

	for _, e := range resp.Errors {
		key := ""
		if e.Key != nil {
			key = *e.Key
		}

		zap.L().Warn("Failed to delete item",
			zap.String("item", key),
			zap.Stringp("code", e.Code),
			zap.Stringp("message", e.Message),
		)
		errored = append(errored, key)
	}

	return deleted, errored, nil
}
