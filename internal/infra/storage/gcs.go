package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"

	"grocery-api/internal/pkg/config"
	"grocery-api/internal/pkg/errs"
)

// InvoiceStorage persists rendered invoice blobs and hands out access links.
type InvoiceStorage interface {
	Upload(ctx context.Context, objectPath string, pdf []byte) (string, error)
}

// GCSStorage stores invoices in a Google Cloud Storage bucket and
// returns time-limited signed URLs.
type GCSStorage struct {
	client       *storage.Client
	bucket       string
	signedURLTTL time.Duration
}

func NewGCSStorage(ctx context.Context, cfg config.Config) (*GCSStorage, func(), error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to create gcs client")
	}
	cleanup := func() { _ = client.Close() }
	return &GCSStorage{
		client:       client,
		bucket:       cfg.Invoice.Bucket,
		signedURLTTL: cfg.Invoice.SignedURLTTL,
	}, cleanup, nil
}

func (s *GCSStorage) Upload(ctx context.Context, objectPath string, pdf []byte) (string, error) {
	obj := s.client.Bucket(s.bucket).Object(objectPath)

	w := obj.NewWriter(ctx)
	w.ContentType = "application/pdf"
	if _, err := w.Write(pdf); err != nil {
		_ = w.Close()
		return "", errs.Wrap(err, fmt.Sprintf("failed to write invoice object %s", objectPath))
	}
	if err := w.Close(); err != nil {
		return "", errs.Wrap(err, fmt.Sprintf("failed to finalize invoice object %s", objectPath))
	}

	url, err := s.client.Bucket(s.bucket).SignedURL(objectPath, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(s.signedURLTTL),
		Scheme:  storage.SigningSchemeV4,
	})
	if err != nil {
		return "", errs.Wrap(err, "failed to sign invoice url")
	}
	return url, nil
}
