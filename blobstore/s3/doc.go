// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("geometry/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = geo.Save(ctx, store, "ic86.hgeo", snapshot.CompressionZSTD)
//
// # Features
//
//   - Range reads
//   - CRC32C-checked single PUTs, multipart uploads for large snapshots
//   - Automatic pagination for listing
//   - Configurable prefix and S3-compatible endpoints
package s3
