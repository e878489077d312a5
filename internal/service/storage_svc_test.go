package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageProvider(t *testing.T) {
	p, err := NewStorageProvider(&StorageConfig{Provider: "local", BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "local", p.Name())

	_, err = NewStorageProvider(&StorageConfig{Provider: "ftp"})
	assert.Error(t, err)

	_, err = NewStorageProvider(&StorageConfig{Provider: "cloudinary", CloudinaryURL: "not-a-url"})
	assert.Error(t, err)
}

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(&StorageConfig{BasePath: dir, Endpoint: "http://localhost:8080/uploads/"})
	require.NoError(t, err)

	url, err := storage.Upload(bg, []byte("data"), "photo.PNG", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	key := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	require.NoError(t, storage.Delete(bg, url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	// 重复删除不报错
	assert.NoError(t, storage.Delete(bg, url))
	assert.Error(t, storage.Delete(bg, "https://elsewhere.example.com/a.png"))
	assert.Error(t, storage.Delete(bg, "http://localhost:8080/uploads/../secret"))
}

func TestS3Storage_URLs(t *testing.T) {
	tests := []struct {
		name   string
		cfg    StorageConfig
		prefix string
	}{
		{"aws", StorageConfig{Bucket: "b", Region: "us-east-1"}, "https://b.s3.us-east-1.amazonaws.com/"},
		{"自定义端点", StorageConfig{Bucket: "b", Region: "us-east-1", Endpoint: "http://minio:9000/"}, "http://minio:9000/b/"},
		{"cdn", StorageConfig{Bucket: "b", Region: "us-east-1", CDNDomain: "cdn.example.com"}, "https://cdn.example.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.AccessKey = "ak"
			tt.cfg.SecretKey = "sk"
			s, err := NewS3Storage(&tt.cfg)
			require.NoError(t, err)

			url := s.publicURL("2024/01/02/x.png")
			assert.Equal(t, tt.prefix+"2024/01/02/x.png", url)
			assert.Equal(t, "2024/01/02/x.png", s.extractKey(url))
		})
	}
}

func TestCloudinaryPublicID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/store/abc.jpg", "store/abc"},
		{"https://res.cloudinary.com/demo/image/upload/abc.png", "abc"},
		{"https://res.cloudinary.com/demo/image/upload/vintage/abc.png", "vintage/abc"},
		{"https://example.com/abc.png", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cloudinaryPublicID(tt.url), tt.url)
	}
}

func TestGenerateKey(t *testing.T) {
	key := generateKey("stores/", "a.JPEG")
	assert.True(t, strings.HasPrefix(key, "stores/"))
	assert.True(t, strings.HasSuffix(key, ".jpeg"))

	assert.True(t, strings.HasSuffix(generateKey("", "noext"), ".jpg"))
}
