package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noSuchBucketBody = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchBucket</Code><Message>The specified bucket does not exist</Message><BucketName>test-bucket</BucketName></Error>`

func newTestStore(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(context.Background(), server.URL, "us-east-1", "access", "secret", "test-bucket", false)
	require.NoError(t, err)
	return client
}

func TestUploadMissingBucket(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(noSuchBucketBody))
	})

	err := store.Upload(context.Background(), "campaigns/1/abc.png", []byte("png"), "image/png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBucketNotFound), "got: %v", err)
}

func TestUploadSuccess(t *testing.T) {
	var gotPath, gotContentType string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, store.Upload(context.Background(), "campaigns/1/abc.png", []byte("png"), "image/png"))
	assert.Equal(t, "/test-bucket/campaigns/1/abc.png", gotPath)
	assert.Equal(t, "image/png", gotContentType)
}

func TestEnsureBucketCreatesMissingBucket(t *testing.T) {
	var createdBucket bool
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			createdBucket = true
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	require.NoError(t, store.EnsureBucket(context.Background()))
	assert.True(t, createdBucket)
}

func TestEnsureBucketExisting(t *testing.T) {
	var createCalled bool
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			createCalled = true
		}
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, store.EnsureBucket(context.Background()))
	assert.False(t, createCalled)
}

func TestPresignedGetURL(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	url, err := store.PresignedGetURL(context.Background(), "campaigns/1/abc.png", 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.Contains(url, "/test-bucket/campaigns/1/abc.png"))
	assert.True(t, strings.Contains(url, "X-Amz-Signature"))
}
