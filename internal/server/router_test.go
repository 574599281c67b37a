package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect/internal/auth"
	"agriconnect/internal/seed"
	"agriconnect/pkg/database/sqlite"
	"agriconnect/pkg/logger"

	orderH "agriconnect/internal/order/handler"
	orderRepoPkg "agriconnect/internal/order/repository"
	orderUCPkg "agriconnect/internal/order/usecase"
	prodH "agriconnect/internal/product/handler"
	prodRepoPkg "agriconnect/internal/product/repository"
	prodUCPkg "agriconnect/internal/product/usecase"
	recH "agriconnect/internal/recommendation/handler"
	recUCPkg "agriconnect/internal/recommendation/usecase"
	uploadH "agriconnect/internal/upload/handler"
	userH "agriconnect/internal/user/handler"
	userRepoPkg "agriconnect/internal/user/repository"
	userUCPkg "agriconnect/internal/user/usecase"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.InitSchema(db))

	log := logger.NewNop()
	tokens := auth.NewManager("test-secret", time.Hour)

	userRepo := userRepoPkg.NewSQLiteRepository(db)
	prodRepo := prodRepoPkg.NewSQLiteRepository(db)
	orderRepo := orderRepoPkg.NewSQLiteRepository(db)

	require.NoError(t, seed.DefaultUsers(context.Background(), userRepo))

	uploadDir := t.TempDir()
	handlers := &Handlers{
		Users:           userH.NewUserHandler(userUCPkg.NewUserUseCase(userRepo, tokens, log), log),
		Products:        prodH.NewProductHandler(prodUCPkg.NewProductUseCase(prodRepo, nil, log), log),
		Orders:          orderH.NewOrderHandler(orderUCPkg.NewOrderUseCase(orderRepo, prodRepo, log), log),
		Recommendations: recH.NewRecommendationHandler(recUCPkg.NewRecommendationUseCase(prodRepo, log), log),
		Uploads:         uploadH.NewUploadHandler(uploadDir, 5*1024*1024, log),
	}

	return NewRouter(tokens, handlers, uploadDir)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func signUp(t *testing.T, router *gin.Engine, name, email, role string) (id, token string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"phone":    "+250788111222",
		"role":     role,
		"location": "Kigali, Rwanda",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		User  struct{ ID string }
		Token string
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.User.ID)
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

func TestHealth(t *testing.T) {
	router := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	decode(t, w, &resp)
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestSignUpAndFetchNeverExposesPassword(t *testing.T) {
	router := newTestServer(t)

	id, token := signUp(t, router, "Alice", "alice@example.com", "farmer")

	w := doJSON(t, router, http.MethodGet, "/api/users/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "secret123")

	var fetched struct {
		ID    string
		Email string
		Role  string
	}
	decode(t, w, &fetched)
	assert.Equal(t, id, fetched.ID)
	assert.Equal(t, "alice@example.com", fetched.Email)
	assert.Equal(t, "farmer", fetched.Role)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	router := newTestServer(t)

	signUp(t, router, "Alice", "alice@example.com", "customer")
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name":     "Imposter",
		"email":    "alice@example.com",
		"password": "secret123",
		"role":     "customer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignInSeededAccounts(t *testing.T) {
	router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/signin", "", gin.H{
		"email":    "customer@demo.com",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	bad := doJSON(t, router, http.MethodPost, "/api/auth/signin", "", gin.H{
		"email":    "customer@demo.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestAuthGatingStatusCodes(t *testing.T) {
	router := newTestServer(t)

	missing := doJSON(t, router, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, missing.Code)

	invalid := doJSON(t, router, http.MethodGet, "/api/users", "not-a-real-token", nil)
	assert.Equal(t, http.StatusForbidden, invalid.Code)

	// Product listing stays public.
	public := doJSON(t, router, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, public.Code)
}

func TestEmptyUpdateRejectedAndRecordUnchanged(t *testing.T) {
	router := newTestServer(t)
	id, token := signUp(t, router, "Alice", "alice@example.com", "customer")

	w := doJSON(t, router, http.MethodPut, "/api/users/"+id, token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	unknown := doJSON(t, router, http.MethodPut, "/api/users/"+id, token, gin.H{"role": "admin"})
	assert.Equal(t, http.StatusBadRequest, unknown.Code)

	fetched := doJSON(t, router, http.MethodGet, "/api/users/"+id, token, nil)
	require.Equal(t, http.StatusOK, fetched.Code)
	var u struct {
		Name string
		Role string
	}
	decode(t, fetched, &u)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "customer", u.Role)
}

func TestDeleteUser(t *testing.T) {
	router := newTestServer(t)
	id, token := signUp(t, router, "Alice", "alice@example.com", "customer")

	missing := doJSON(t, router, http.MethodDelete, "/api/users/ghost", token, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)

	deleted := doJSON(t, router, http.MethodDelete, "/api/users/"+id, token, nil)
	assert.Equal(t, http.StatusOK, deleted.Code)

	gone := doJSON(t, router, http.MethodGet, "/api/users/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestDeleteFarmerWithProducts(t *testing.T) {
	router := newTestServer(t)

	farmerID, token := signUp(t, router, "Farmer Joe", "joe@example.com", "farmer")
	created := doJSON(t, router, http.MethodPost, "/api/products", token, gin.H{
		"farmerId":    farmerID,
		"name":        "Free Range Eggs",
		"category":    "eggs",
		"price":       3200,
		"unit":        "tray",
		"description": "30 fresh eggs",
	})
	require.Equal(t, http.StatusOK, created.Code)
	var product struct{ ID string }
	decode(t, created, &product)

	// Hard delete succeeds even though the farmer still has products.
	deleted := doJSON(t, router, http.MethodDelete, "/api/users/"+farmerID, token, nil)
	assert.Equal(t, http.StatusOK, deleted.Code, deleted.Body.String())

	// The product survives with its dangling farmer reference.
	remaining := doJSON(t, router, http.MethodGet, "/api/products/"+product.ID, "", nil)
	assert.Equal(t, http.StatusOK, remaining.Code)
}

func TestEndToEndCheckout(t *testing.T) {
	router := newTestServer(t)

	farmerID, farmerToken := signUp(t, router, "Farmer Joe", "joe@example.com", "farmer")

	created := doJSON(t, router, http.MethodPost, "/api/products", farmerToken, gin.H{
		"farmerId":    farmerID,
		"name":        "Free Range Eggs",
		"category":    "eggs",
		"price":       3200,
		"unit":        "tray",
		"description": "30 fresh eggs",
		"stock":       50,
	})
	require.Equal(t, http.StatusOK, created.Code, created.Body.String())
	var product struct{ ID string }
	decode(t, created, &product)

	_, customerToken := signUp(t, router, "Jane", "jane@example.com", "customer")
	customerW := doJSON(t, router, http.MethodPost, "/api/auth/signin", "", gin.H{
		"email": "jane@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, customerW.Code)
	var signin struct {
		User struct{ ID string }
	}
	decode(t, customerW, &signin)

	checkout := doJSON(t, router, http.MethodPost, "/api/orders", customerToken, gin.H{
		"customerId":      signin.User.ID,
		"customerName":    "Jane",
		"customerPhone":   "+250788111222",
		"deliveryAddress": "Kigali, Rwanda",
		"items": []gin.H{
			{"productId": product.ID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusOK, checkout.Code, checkout.Body.String())

	var result struct {
		Orders []struct {
			ID       string
			FarmerID string
			Total    float64
			Status   string
		}
	}
	decode(t, checkout, &result)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, farmerID, result.Orders[0].FarmerID)
	assert.InDelta(t, 6400.0, result.Orders[0].Total, 1e-9)
	assert.Equal(t, "pending", result.Orders[0].Status)

	listed := doJSON(t, router, http.MethodGet, "/api/orders?farmerId="+farmerID, farmerToken, nil)
	require.Equal(t, http.StatusOK, listed.Code)
	var orders []struct {
		ID    string
		Total float64
	}
	decode(t, listed, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, result.Orders[0].ID, orders[0].ID)
	assert.InDelta(t, 6400.0, orders[0].Total, 1e-9)

	status := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/orders/%s/status", orders[0].ID), farmerToken, gin.H{
		"status": "confirmed",
	})
	assert.Equal(t, http.StatusOK, status.Code)
}

func TestRecommendationsEndpoint(t *testing.T) {
	router := newTestServer(t)

	farmerID, farmerToken := signUp(t, router, "Farmer Joe", "joe@example.com", "farmer")
	created := doJSON(t, router, http.MethodPost, "/api/products", farmerToken, gin.H{
		"farmerId":    farmerID,
		"name":        "Free Range Eggs",
		"category":    "eggs",
		"price":       3200,
		"unit":        "tray",
		"description": "30 fresh eggs",
		"quality":     gin.H{"rating": 5, "freshness": 100},
		"location":    gin.H{"lat": -1.9441, "lng": 30.0619, "address": "Kigali"},
	})
	require.Equal(t, http.StatusOK, created.Code)

	w := doJSON(t, router, http.MethodGet, "/api/recommendations?lat=-1.9441&lng=30.0619", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var recs []struct {
		ProductID string
		Score     float64
		Reason    string
	}
	decode(t, w, &recs)
	require.Len(t, recs, 1)
	assert.InDelta(t, 100.0, recs[0].Score, 1e-9)

	missingCoords := doJSON(t, router, http.MethodGet, "/api/recommendations", "", nil)
	assert.Equal(t, http.StatusBadRequest, missingCoords.Code)
}

func TestUpload(t *testing.T) {
	router := newTestServer(t)
	_, token := signUp(t, router, "Alice", "alice@example.com", "farmer")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfakeimagedata"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]string
	decode(t, w, &resp)
	assert.Contains(t, resp["url"], "/uploads/")

	// Non-image payloads are rejected.
	var badBuf bytes.Buffer
	bw := multipart.NewWriter(&badBuf)
	badHeader := textproto.MIMEHeader{}
	badHeader.Set("Content-Disposition", `form-data; name="image"; filename="notes.txt"`)
	badHeader.Set("Content-Type", "text/plain")
	badPart, err := bw.CreatePart(badHeader)
	require.NoError(t, err)
	_, err = badPart.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, bw.Close())

	badReq := httptest.NewRequest(http.MethodPost, "/api/upload", &badBuf)
	badReq.Header.Set("Content-Type", bw.FormDataContentType())
	badReq.Header.Set("Authorization", "Bearer "+token)
	badW := httptest.NewRecorder()
	router.ServeHTTP(badW, badReq)
	assert.Equal(t, http.StatusBadRequest, badW.Code)
}
