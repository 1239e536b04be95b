package oss

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"blog.com/cmd/model"
	"blog.com/pkg/errno"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

var suffixes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DecodeDataURL 解析 data:image/png;base64,.... 形式的图片
func DecodeDataURL(s string) ([]byte, string, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, "", errno.ParamErr.WithMessage("image must be a base64 data url")
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, "", errno.ParamErr.WithMessage("image must be a base64 data url")
	}
	contentType := strings.TrimSuffix(meta, ";base64")
	if _, ok := suffixes[contentType]; !ok {
		return nil, "", errno.ParamErr.WithMessage(fmt.Sprintf("unsupported image format: %s", contentType))
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errno.ParamErr.WithMessage("image is not valid base64")
	}
	return data, contentType, nil
}

// UploadImage 把 data url 图片存到 folder 下，返回 public id 和访问地址
func UploadImage(ctx context.Context, folder, dataURL string) (model.Image, error) {
	data, contentType, err := DecodeDataURL(dataURL)
	if err != nil {
		return model.Image{}, err
	}
	if minioClient == nil {
		return model.Image{}, errno.OSSErr.WithMessage("image storage is not configured")
	}
	publicId := folder + "/" + uuid.NewString()
	objectName := publicId + suffixes[contentType]
	_, err = minioClient.PutObject(ctx, bucketName, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return model.Image{}, errors.Wrap(errno.OSSErr, err.Error())
	}
	return model.Image{PublicId: objectName, Url: ObjectURL(objectName)}, nil
}

// DeleteImage 删除对象，空 id 或默认头像直接跳过
func DeleteImage(ctx context.Context, publicId string) error {
	if publicId == "" || minioClient == nil {
		return nil
	}
	if err := minioClient.RemoveObject(ctx, bucketName, publicId, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(errno.OSSErr, err.Error())
	}
	return nil
}

func ObjectURL(objectName string) string {
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, publicHost, bucketName, objectName)
}
