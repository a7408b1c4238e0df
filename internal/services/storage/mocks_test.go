package storage

import (
	"context"
	"errors"
	"io"
)

type mockHost struct {
	url      string
	err      error
	received string
	calls    int
}

func (m *mockHost) Name() string { return "mock" }

func (m *mockHost) Upload(ctx context.Context, base64Image string) (string, error) {
	m.calls++
	m.received = base64Image
	return m.url, m.err
}

func (m *mockHost) HealthCheck(ctx context.Context) string { return "healthy" }

type mockBucketStore struct {
	putErr      error
	pingErr     error
	url         string
	lastBucket  string
	lastKey     string
	lastType    string
	lastPayload []byte
}

func (m *mockBucketStore) Put(bucket, key string, data io.Reader, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	payload, err := io.ReadAll(data)
	if err != nil {
		return errors.New("read failed")
	}
	m.lastBucket, m.lastKey, m.lastType, m.lastPayload = bucket, key, contentType, payload
	return nil
}

func (m *mockBucketStore) PublicURL(bucket, key string) string {
	if m.url == "" {
		return ""
	}
	return m.url + "/" + bucket + "/" + key
}

func (m *mockBucketStore) Ping(bucket string) error { return m.pingErr }
