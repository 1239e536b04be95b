package oss

import (
	"context"

	"blog.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	minioClient *minio.Client
	bucketName  string
	publicHost  string
	secure      bool
)

func InitMinio() error {
	cfg := config.ConfigInfo.Minio
	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", cfg.Endpoint, cfg.AccessKey)

	var err error
	minioClient, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		hlog.Errorf("Failed to create MinIO client: %v", err)
		return err
	}
	bucketName = cfg.Bucket
	publicHost = cfg.PublicHost
	if publicHost == "" {
		publicHost = cfg.Endpoint
	}
	secure = cfg.UseSSL

	if err = ensureBucket(context.Background()); err != nil {
		hlog.Errorf("Failed to prepare bucket %s: %v", bucketName, err)
		return err
	}
	hlog.Info("Connect Minio Success")
	return nil
}

// ensureBucket 检查存储桶是否存在，不存在则创建
func ensureBucket(ctx context.Context) error {
	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
}
