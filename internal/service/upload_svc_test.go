package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/model"
	"store_admin_dashboard/internal/testutil"
	"store_admin_dashboard/pkg/utils"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func setupUploadService(t *testing.T, maxSize int64, opts ...utils.ClientOption) (*services, *UploadService, *testutil.Fixture) {
	t.Helper()
	s := setupServices(t)
	f := testutil.Seed(t, s.db, ownerID, "Main")

	storage, err := NewLocalStorage(&StorageConfig{BasePath: t.TempDir(), Endpoint: "http://localhost/uploads"})
	require.NoError(t, err)

	svc := NewUploadService(s.guard, s.uow.Uploads, storage, utils.NewHTTPClient(5*time.Second, opts...), maxSize)
	return s, svc, f
}

func TestUploadService_Upload(t *testing.T) {
	s, svc, f := setupUploadService(t, 1<<20)
	data := pngBytes(t)

	upload, err := svc.Upload(bg, ownerID, f.Store.ID, "photo.txt", data)
	require.NoError(t, err)
	assert.Equal(t, "image/png", upload.ContentType)
	assert.Equal(t, "local", upload.Provider)
	assert.Equal(t, int64(len(data)), upload.Size)
	assert.Contains(t, upload.URL, ".png")
	assert.Equal(t, int64(1), countRows(t, s.db, "uploads"))

	tests := []struct {
		name   string
		userID string
		data   []byte
		want   error
	}{
		{"非图片", ownerID, []byte("plain text"), ErrInvalidUpload},
		{"空文件", ownerID, nil, ErrInvalidUpload},
		{"非所有者", otherID, data, ErrUnauthorized},
		{"无身份", "", data, ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(bg, tt.userID, f.Store.ID, "x.png", tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, int64(1), countRows(t, s.db, "uploads"))
}

func TestUploadService_TooLarge(t *testing.T) {
	_, svc, f := setupUploadService(t, 10)

	_, err := svc.Upload(bg, ownerID, f.Store.ID, "x.png", pngBytes(t))
	assert.ErrorIs(t, err, ErrInvalidUpload)
}

func TestUploadService_UploadFromURL(t *testing.T) {
	_, svc, f := setupUploadService(t, 1<<20, utils.AllowPrivateNetworks())
	data := pngBytes(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	upload, err := svc.UploadFromURL(bg, ownerID, f.Store.ID, server.URL+"/pic.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", upload.ContentType)

	_, err = svc.UploadFromURL(bg, ownerID, f.Store.ID, server.URL+"/missing.png")
	assert.ErrorIs(t, err, ErrInvalidUpload)
}

func TestUploadService_UploadFromURL_InternalTargets(t *testing.T) {
	s, svc, f := setupUploadService(t, 1<<20)

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes(t))
	}))
	defer server.Close()

	for _, target := range []string{
		server.URL + "/pic.png",
		"http://169.254.169.254/latest/meta-data/",
		"http://[::1]/pic.png",
		"gopher://example.com/pic.png",
	} {
		t.Run(target, func(t *testing.T) {
			_, err := svc.UploadFromURL(bg, ownerID, f.Store.ID, target)
			assert.ErrorIs(t, err, ErrInvalidUpload)
		})
	}
	assert.Zero(t, hits)
	assert.Zero(t, countRows(t, s.db, "uploads"))
}

func TestUploadService_Orphans(t *testing.T) {
	s, svc, f := setupUploadService(t, 1<<20)

	orphan, err := svc.Upload(bg, ownerID, f.Store.ID, "a.png", pngBytes(t))
	require.NoError(t, err)
	used, err := svc.Upload(bg, ownerID, f.Store.ID, "b.png", pngBytes(t))
	require.NoError(t, err)

	_, err = s.billboards.Create(bg, ownerID, f.Store.ID, &dto.BillboardReq{Label: "Used", ImageURL: used.URL})
	require.NoError(t, err)

	list, err := svc.ListOrphans(bg, time.Now().Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, orphan.ID, list[0].ID)

	require.NoError(t, svc.DeleteOrphan(bg, &list[0]))
	assert.Equal(t, int64(1), countRows(t, s.db, "uploads"))

	foreign := &model.Upload{URL: "https://res.cloudinary.com/x.png", Provider: "cloudinary"}
	assert.Error(t, svc.DeleteOrphan(bg, foreign))
}
