package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerconnect/internal/domain"
)

func TestUpload_StoresAllowedTypes(t *testing.T) {
	store := newMemStore()
	svc := NewUploadService(store, 0)

	url, err := svc.Upload(context.Background(), "me.png", "image/png", 3, strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://files.test/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	require.Len(t, store.objects, 1)
	for _, body := range store.objects {
		assert.Equal(t, "png", body)
	}
}

func TestUpload_Rejections(t *testing.T) {
	store := newMemStore()
	svc := NewUploadService(store, 4)

	_, err := svc.Upload(context.Background(), "x.html", "text/html", 1, strings.NewReader("<"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "only .jpeg, .jpg, .png, and .pdf formats are allowed", err.Error())

	_, err = svc.Upload(context.Background(), "big.pdf", "application/pdf", 5, strings.NewReader("12345"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Upload(context.Background(), "none.pdf", "application/pdf", 0, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, store.objects)
}
