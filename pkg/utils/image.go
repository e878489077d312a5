package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
)

// ErrDownloadTooLarge 远程文件超过大小限制
var ErrDownloadTooLarge = errors.New("remote file exceeds size limit")

// DownloadImage 下载网络图片，返回内容与响应头中的 Content-Type
// maxSize <= 0 时不限制大小
func DownloadImage(ctx context.Context, client *resty.Client, rawURL string, maxSize int64) ([]byte, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, "", fmt.Errorf("无效的地址: %s", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", ErrUnsupportedScheme
	}

	resp, err := client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(u.String())
	if err != nil {
		return nil, "", fmt.Errorf("下载失败: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, "", fmt.Errorf("下载失败: HTTP %d", resp.StatusCode())
	}

	reader := io.Reader(body)
	if maxSize > 0 {
		reader = io.LimitReader(body, maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("读取失败: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, "", ErrDownloadTooLarge
	}

	return data, resp.Header().Get("Content-Type"), nil
}
