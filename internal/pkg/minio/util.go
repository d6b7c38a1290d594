package minio

import (
	"Newsroom/internal/api/config"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
)

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, MainBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetPublicURL 获取文件的公共访问URL
func GetPublicURL(objectName string) string {
	return fmt.Sprintf("https://%s/%s/%s", config.Cfg.MinIO.ExternalEndpoint, MainBucket, objectName)
}

// ObjectNameFromURL 从公共 URL 或对象名中解析出桶内对象名
// 不属于本桶的外部地址返回 false
func ObjectNameFromURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "://") {
		return strings.TrimPrefix(raw, "/"), true
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	prefix := "/" + MainBucket + "/"
	if MainBucket == "" || !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(u.Path, prefix)
	return name, name != ""
}

// AssetStore 级联删除使用的资源清理入口
type AssetStore struct{}

func NewAssetStore() *AssetStore {
	return &AssetStore{}
}

// Remove 删除 URL 对应的对象，外部地址直接忽略
func (a *AssetStore) Remove(ctx context.Context, rawURL string) error {
	name, ok := ObjectNameFromURL(rawURL)
	if !ok {
		return nil
	}
	return DeleteFile(ctx, name)
}
