// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Datasets of XYZ geometry files can be read directly from a bucket and
// feature tables written back, with streaming multipart uploads for large
// results:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(s3sdk.NewFromConfig(cfg), "my-bucket", "datasets/qm9/")
//
// All keys are prefixed with the configured root prefix.
package s3
