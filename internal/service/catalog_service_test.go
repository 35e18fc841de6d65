package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMediaStorage struct {
	ImageURLFn func(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

func (f *fakeMediaStorage) ImageURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return f.ImageURLFn(ctx, objectKey, expires)
}

func TestCatalogPrograms(t *testing.T) {
	t.Run("every program gets a presigned artwork link", func(t *testing.T) {
		media := &fakeMediaStorage{
			ImageURLFn: func(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
				return "https://media.example.com/" + objectKey, nil
			},
		}
		svc := NewCatalogService(media)

		listings, err := svc.Programs(context.Background())
		require.NoError(t, err)
		require.Len(t, listings, 4)
		assert.Equal(t, "Yoga", listings[0].Program.Name)
		assert.Equal(t, "https://media.example.com/programs/yoga.webp", listings[0].ImageURL)
	})

	t.Run("storage failure degrades to an empty link", func(t *testing.T) {
		media := &fakeMediaStorage{
			ImageURLFn: func(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
				return "", errors.New("bucket unreachable")
			},
		}
		svc := NewCatalogService(media)

		listings, err := svc.Programs(context.Background())
		require.NoError(t, err)
		require.Len(t, listings, 4)
		for _, l := range listings {
			assert.Empty(t, l.ImageURL)
		}
	})
}

func TestCatalogMemberships(t *testing.T) {
	svc := NewCatalogService(nil)

	listings := svc.Memberships()
	require.Len(t, listings, 3)
	assert.Equal(t, 49.99, listings[0].Price)
	assert.Equal(t, 99.99, listings[1].Price)
	assert.Equal(t, 149.99, listings[2].Price)
	for _, l := range listings {
		assert.NotEmpty(t, l.Features)
	}
}
