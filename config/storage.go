package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage is the object-storage client for proposal documents, CVs
// and shared resources. Stored references are public URLs.
var Storage *minio.Client

// StorageBucket is the bucket all uploads land in.
var StorageBucket string

// InitStorage connects to the object store, creates the bucket when
// missing and makes its objects publicly readable.
func InitStorage() {
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	accessKey := os.Getenv("STORAGE_ACCESS_KEY")
	secretKey := os.Getenv("STORAGE_SECRET_KEY")
	useSSL := os.Getenv("STORAGE_USE_SSL") == "true"

	StorageBucket = os.Getenv("STORAGE_BUCKET")
	if StorageBucket == "" {
		StorageBucket = "grant-documents"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Fatal("Failed to connect to object storage:", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, StorageBucket)
	if err != nil {
		log.Fatal("Failed to check storage bucket:", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, StorageBucket, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("Failed to create storage bucket:", err)
		}
		log.Printf("Created storage bucket: %s", StorageBucket)
	}

	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    []string{"s3:GetObject"},
				"Resource":  []string{"arn:aws:s3:::" + StorageBucket + "/*"},
			},
		},
	}
	policyJSON, _ := json.Marshal(policy)
	if err := client.SetBucketPolicy(ctx, StorageBucket, string(policyJSON)); err != nil {
		log.Printf("Warning: Failed to set bucket policy: %v", err)
	}

	Storage = client
	log.Println("Object storage connected successfully")
}

// PublicURL builds the public URL for a stored object key.
func PublicURL(key string) string {
	base := os.Getenv("STORAGE_PUBLIC_URL")
	if base == "" {
		scheme := "http"
		if os.Getenv("STORAGE_USE_SSL") == "true" {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, os.Getenv("STORAGE_ENDPOINT"))
	}
	return fmt.Sprintf("%s/%s/%s", base, StorageBucket, key)
}
