package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("\x89PNG\r\n\x1a\n0000"))
		case "/big.png":
			_, _ = w.Write(make([]byte, 64))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewHTTPClient(0, AllowPrivateNetworks())
	ctx := context.Background()

	data, contentType, err := DownloadImage(ctx, client, srv.URL+"/ok.png", 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Len(t, data, 12)

	_, _, err = DownloadImage(ctx, client, srv.URL+"/big.png", 16)
	assert.ErrorIs(t, err, ErrDownloadTooLarge)

	_, _, err = DownloadImage(ctx, client, srv.URL+"/missing.png", 1024)
	assert.Error(t, err)
}

func TestDownloadImage_RejectsPrivateTargets(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/redirect" {
			http.Redirect(w, r, "ftp://files.example.com/a.png", http.StatusFound)
			return
		}
		_, _ = w.Write([]byte("secret"))
	}))
	defer srv.Close()

	ctx := context.Background()
	client := NewHTTPClient(0)

	_, _, err := DownloadImage(ctx, client, srv.URL+"/a.png", 1024)
	assert.ErrorIs(t, err, ErrForbiddenAddress)
	assert.Zero(t, hits, "回环地址不应建立连接")

	_, _, err = DownloadImage(ctx, client, "file:///etc/passwd", 1024)
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, _, err = DownloadImage(ctx, client, "not a url", 1024)
	assert.Error(t, err)

	// 重定向到非 http 协议被拦截
	_, _, err = DownloadImage(ctx, NewHTTPClient(0, AllowPrivateNetworks()), srv.URL+"/redirect", 1024)
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
	assert.Equal(t, 1, hits)
}

func TestIsPublicAddr(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"8.8.8.8", true},
		{"2606:4700:4700::1111", true},
		{"127.0.0.1", false},
		{"::1", false},
		{"10.0.0.5", false},
		{"172.16.3.4", false},
		{"192.168.1.1", false},
		{"169.254.169.254", false},
		{"100.64.0.1", false},
		{"0.0.0.0", false},
		{"fe80::1", false},
		{"fc00::1", false},
		{"::ffff:127.0.0.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPublicAddr(netip.MustParseAddr(tt.addr)))
		})
	}
}
