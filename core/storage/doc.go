// Package storage wraps the MinIO client used to read exported record sets
// and to store rendered reports. It works against AWS S3 and self-hosted
// MinIO alike.
//
// The Client interface keeps only the operations the correlator calls, so
// core/storage/mocks can stand in for it in tests.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
//	    return err
//	}
//	names, err := storage.ListObjectNames(ctx, client, cfg.Storage.Bucket, "exports/")
package storage
