// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage system. This package uses the
// MinIO Go client and also works with other S3-compatible services such as
// Ceph, SeaweedFS and Garage.
//
// # Basic Usage
//
//	client, err := minio.NewClient(minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minio.NewStore(client, "my-bucket", "geometry/")
//	geo, err := hashgeo.Load(ctx, store, "ic86.hgeo")
package minio
