package router

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"store_admin_dashboard/internal/controller"
	"store_admin_dashboard/internal/middleware"
	"store_admin_dashboard/internal/repository"
	"store_admin_dashboard/internal/service"
	"store_admin_dashboard/internal/testutil"
	"store_admin_dashboard/pkg/utils"
)

const (
	ownerID = "user_owner"
	otherID = "user_other"
)

type testApp struct {
	engine *gin.Engine
	db     *gorm.DB
}

func setupApp(t *testing.T, uploadBurst int) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenTTL: time.Hour,
		Issuer:         "store-admin",
	})

	db := testutil.NewDB(t)
	uow := repository.NewUnitOfWork(db)
	guard := service.NewOwnershipGuard(uow.Stores)

	storage, err := service.NewLocalStorage(&service.StorageConfig{BasePath: t.TempDir(), Endpoint: "http://localhost/uploads"})
	require.NoError(t, err)
	uploadSvc := service.NewUploadService(guard, uow.Uploads, storage, utils.NewHTTPClient(5*time.Second), 1<<20)

	ctls := &Controllers{
		Health:    controller.NewHealthController(db),
		Store:     controller.NewStoreController(service.NewStoreService(uow.Stores, guard, uow)),
		Billboard: controller.NewBillboardController(service.NewBillboardService(uow.Billboards, guard, uow)),
		Category:  controller.NewCategoryController(service.NewCategoryService(uow.Categories, guard, uow)),
		Size:      controller.NewSizeController(service.NewSizeService(uow.Sizes, guard, uow)),
		Color:     controller.NewColorController(service.NewColorService(uow.Colors, guard, uow)),
		Product:   controller.NewProductController(service.NewProductService(uow.Products, guard, uow)),
		Upload:    controller.NewUploadController(uploadSvc, 1<<20),
	}

	engine := New(ctls, Options{
		Logger:        zap.NewNop(),
		UploadLimiter: middleware.NewKeyedRateLimiter(1, uploadBurst),
		StaticDir:     storage.BasePath(),
	})
	return &testApp{engine: engine, db: db}
}

func token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := middleware.GenerateAccessToken(userID)
	require.NoError(t, err)
	return tok
}

func (a *testApp) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, userID))
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func count(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

// ==================== 系统路由 ====================

func TestSystemRoutes(t *testing.T) {
	app := setupApp(t, 5)

	w := app.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

// ==================== 店铺 ====================

func TestStoreRoutes(t *testing.T) {
	app := setupApp(t, 5)

	w := app.do(t, http.MethodPost, "/api/stores", "", map[string]string{"name": "Main"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, int64(0), count(t, app.db, "stores"))

	w = app.do(t, http.MethodPost, "/api/stores", ownerID, map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/stores", ownerID, map[string]string{"name": "Main"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var store map[string]any
	decode(t, w, &store)
	storeID := store["id"].(string)
	assert.Equal(t, ownerID, store["userId"])
	assert.Equal(t, ownerID, store["createdBy"])

	w = app.do(t, http.MethodPost, "/api/stores", otherID, map[string]string{"name": "Main"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodGet, "/api/stores", ownerID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	decode(t, w, &list)
	assert.Len(t, list, 1)

	w = app.do(t, http.MethodGet, "/api/stores/"+storeID, otherID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPatch, "/api/stores/"+storeID, ownerID, map[string]string{"name": "Renamed"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodDelete, "/api/stores/"+storeID, otherID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodDelete, "/api/stores/"+storeID, ownerID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), count(t, app.db, "stores"))
}

// ==================== 颜色 / 尺码 ====================

func TestColorRoutes(t *testing.T) {
	app := setupApp(t, 5)
	f := testutil.Seed(t, app.db, ownerID, "store1")
	path := "/api/" + f.Store.ID + "/colors"

	w := app.do(t, http.MethodPost, path, ownerID, map[string]string{"name": "Black", "value": "#000000"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var color map[string]any
	decode(t, w, &color)
	assert.NotEmpty(t, color["id"])
	assert.Equal(t, "Black", color["name"])
	assert.Equal(t, "#000000", color["value"])
	assert.Equal(t, f.Store.ID, color["storeId"])

	w = app.do(t, http.MethodPost, path, ownerID, map[string]string{"name": "Black", "value": "#000000"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, int64(3), count(t, app.db, "colors"))

	w = app.do(t, http.MethodPost, path, ownerID, map[string]string{"name": "Bad", "value": "red"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var verr struct {
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	decode(t, w, &verr)
	assert.Equal(t, "Invalid input", verr.Message)
	require.NotEmpty(t, verr.Errors)
	assert.Equal(t, "value", verr.Errors[0].Field)

	// 店铺子资源的 GET 无需登录
	w = app.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	decode(t, w, &list)
	assert.Len(t, list, 3)

	w = app.do(t, http.MethodGet, path+"/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSizeRoutes_NonOwner(t *testing.T) {
	app := setupApp(t, 5)
	f := testutil.Seed(t, app.db, ownerID, "store1")
	path := "/api/" + f.Store.ID + "/sizes"

	w := app.do(t, http.MethodPost, path, otherID, map[string]string{"name": "Small", "value": "XS"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, path, "", map[string]string{"name": "Small", "value": "XS"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPatch, path+"/"+f.Sizes[0].ID, otherID, map[string]string{"name": "X", "value": "X"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.Equal(t, int64(2), count(t, app.db, "sizes"))
}

// ==================== 广告牌 / 分类 ====================

func TestBillboardRoutes_ReferencedDelete(t *testing.T) {
	app := setupApp(t, 5)
	f := testutil.Seed(t, app.db, ownerID, "store1")

	w := app.do(t, http.MethodDelete, "/api/"+f.Store.ID+"/billboards/"+f.Billboard.ID, ownerID, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal error"}`, w.Body.String())
	assert.Equal(t, int64(1), count(t, app.db, "billboards"))
}

func TestCategoryRoutes_InvalidBillboard(t *testing.T) {
	app := setupApp(t, 5)
	f := testutil.Seed(t, app.db, ownerID, "store1")

	w := app.do(t, http.MethodPost, "/api/"+f.Store.ID+"/categories", ownerID,
		map[string]string{"name": "Hats", "billboardId": "missing"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "billboardId")

	w = app.do(t, http.MethodGet, "/api/"+f.Store.ID+"/categories/"+f.Category.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var category map[string]any
	decode(t, w, &category)
	billboard, ok := category["billboard"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Summer", billboard["label"])
}

// ==================== 商品 ====================

func productBody(f *testutil.Fixture, name string, featured bool) map[string]any {
	return map[string]any{
		"name":       name,
		"categoryId": f.Category.ID,
		"quantity":   "3",
		"price":      "19.99",
		"isFeatured": featured,
		"sizes":      []map[string]string{{"id": f.Sizes[0].ID}, {"id": f.Sizes[1].ID}},
		"colors":     []map[string]string{{"id": f.Colors[0].ID}},
		"images":     []map[string]string{{"url": "https://cdn.example.com/a.jpg"}},
	}
}

func TestProductRoutes(t *testing.T) {
	app := setupApp(t, 5)
	f := testutil.Seed(t, app.db, ownerID, "store1")
	base := "/api/" + f.Store.ID + "/products"

	w := app.do(t, http.MethodPost, base, ownerID, productBody(f, "Tee", true))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product map[string]any
	decode(t, w, &product)
	assert.InDelta(t, 19.99, product["price"], 0.001)
	assert.EqualValues(t, 3, product["quantity"])
	assert.Len(t, product["sizes"], 2)
	assert.NotNil(t, product["category"])

	w = app.do(t, http.MethodPost, base, ownerID, productBody(f, "Tee", true))
	assert.Equal(t, http.StatusConflict, w.Code)

	empty := productBody(f, "Empty", false)
	empty["images"] = []map[string]string{}
	w = app.do(t, http.MethodPost, base, ownerID, empty)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "images")

	w = app.do(t, http.MethodPost, base, ownerID, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	fractional := productBody(f, "Half", false)
	fractional["quantity"] = 1.5
	w = app.do(t, http.MethodPost, base, ownerID, fractional)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var verr struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	decode(t, w, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "quantity", verr.Errors[0].Field)
	assert.Equal(t, "must be an integer", verr.Errors[0].Message)

	archived := productBody(f, "Old", false)
	archived["isArchived"] = true
	w = app.do(t, http.MethodPost, base, ownerID, archived)
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name   string
		query  string
		userID string
		code   int
		count  int
	}{
		{"默认排除归档", "", "", http.StatusOK, 1},
		{"推荐", "?isFeatured=true", "", http.StatusOK, 1},
		{"按尺码", "?sizeId=" + f.Sizes[1].ID + "&sizeId=missing", "", http.StatusOK, 1},
		{"按颜色无命中", "?colorId=" + f.Colors[1].ID, "", http.StatusOK, 0},
		{"按广告牌", "?billboardId=" + f.Billboard.ID, "", http.StatusOK, 1},
		{"含归档", "?includeArchived=true", ownerID, http.StatusOK, 2},
		{"含归档未登录", "?includeArchived=true", "", http.StatusUnauthorized, 0},
		{"含归档非所有者", "?includeArchived=true", otherID, http.StatusForbidden, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, http.MethodGet, base+tt.query, tt.userID, nil)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				return
			}
			var list []map[string]any
			decode(t, w, &list)
			assert.Len(t, list, tt.count)
		})
	}
}

// ==================== 上传 ====================

func multipartPNG(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 1, 1))))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "pixel.png")
	require.NoError(t, err)
	_, err = fw.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestUploadRoutes(t *testing.T) {
	app := setupApp(t, 1)
	f := testutil.Seed(t, app.db, ownerID, "store1")
	path := "/api/" + f.Store.ID + "/uploads"

	upload := func(userID string) *httptest.ResponseRecorder {
		body, contentType := multipartPNG(t)
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token(t, userID))
		w := httptest.NewRecorder()
		app.engine.ServeHTTP(w, req)
		return w
	}

	w := upload(ownerID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rec map[string]any
	decode(t, w, &rec)
	assert.Equal(t, "image/png", rec["contentType"])
	assert.Equal(t, f.Store.ID, rec["storeId"])

	// 桶容量为 1，第二次立即上传被限流
	w = upload(ownerID)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = upload(otherID)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, path, "", map[string]string{"url": "https://example.com/a.png"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, int64(1), count(t, app.db, "uploads"))
}
