package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billdomain "github.com/ormgarage/facturation/internal/bill/domain"
	billrepository "github.com/ormgarage/facturation/internal/bill/repository"
	billservice "github.com/ormgarage/facturation/internal/bill/service"
	clientdomain "github.com/ormgarage/facturation/internal/client/domain"
	clientrepository "github.com/ormgarage/facturation/internal/client/repository"
	clientservice "github.com/ormgarage/facturation/internal/client/service"
	appconfig "github.com/ormgarage/facturation/internal/config"
	"github.com/ormgarage/facturation/internal/providers/pdf"
)

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&clientdomain.Client{},
		&billdomain.Bill{},
		&billdomain.BillItem{},
	))

	clients := clientservice.New(clientservice.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: clientrepository.Provide(),
	})
	bills := billservice.New(billservice.Params{
		DB:      db,
		Log:     zap.NewNop(),
		Repo:    billrepository.Provide(),
		Clients: clients,
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	NewServer(ServerParams{
		Gin:       engine,
		Cfg:       appconfig.Config{CompanyName: "ORM"},
		ClientSvc: clientservice.ProvideService(clients),
		BillSvc:   bills,
		Invoices:  pdf.New(appconfig.Config{CompanyName: "ORM"}),
	})
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestClientCRUDOverHTTP(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/clients", gin.H{
		"name":  "Ali Ben Salah",
		"phone": "22 333 444",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	require.Equal(t, "CL001", created["code"])

	w = doJSON(t, engine, http.MethodGet, "/api/clients/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Ali Ben Salah", decodeBody(t, w)["name"])

	w = doJSON(t, engine, http.MethodPut, "/api/clients/1", gin.H{"name": "Ali B. Salah"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Ali B. Salah", decodeBody(t, w)["name"])

	w = doJSON(t, engine, http.MethodGet, "/api/clients?search=CL001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = doJSON(t, engine, http.MethodDelete, "/api/clients/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Client deleted successfully", decodeBody(t, w)["message"])

	w = doJSON(t, engine, http.MethodGet, "/api/clients/1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Client not found", decodeBody(t, w)["message"])
}

func TestBillLifecycleOverHTTP(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/bills", gin.H{
		"client_name":  "Ali Ben Salah",
		"client_phone": "22 333 444",
		"items": []gin.H{
			{"name": "Vidange moteur", "quantity": 2, "unit_price": "15.00"},
			{"name": "Filtre à huile", "unit_price": "8.50"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	require.NotNil(t, created["client"])

	w = doJSON(t, engine, http.MethodGet, "/api/bills/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/bills/client/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPatch, "/api/bills/1/paid", gin.H{"paid": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decodeBody(t, w)["paid"])

	w = doJSON(t, engine, http.MethodPut, "/api/bills/1", gin.H{
		"items": []gin.H{{"name": "Pneus", "quantity": 4, "unit_price": "120.00"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodDelete, "/api/bills/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Bill deleted successfully", decodeBody(t, w)["message"])

	w = doJSON(t, engine, http.MethodGet, "/api/bills/1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Bill not found", decodeBody(t, w)["message"])
}

func TestBillPDFDownload(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/bills", gin.H{
		"client_name":  "Ali Ben Salah",
		"client_phone": "22 333 444",
		"items":        []gin.H{{"name": "Vidange moteur", "unit_price": "30.00"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/bills/1/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	require.Equal(t, "attachment; filename=facture-1.pdf", w.Header().Get("Content-Disposition"))
	require.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = doJSON(t, engine, http.MethodGet, "/api/bills/999/pdf", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Bill not found", decodeBody(t, w)["message"])
}

func TestValidationErrors(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/api/clients/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid request", decodeBody(t, w)["message"])

	w = doJSON(t, engine, http.MethodPost, "/api/clients", gin.H{"phone": "22 333 444"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Client name is required", decodeBody(t, w)["message"])

	w = doJSON(t, engine, http.MethodPost, "/api/bills", gin.H{
		"client_name":  "Ali",
		"client_phone": "22 333 444",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "At least one item is required", decodeBody(t, w)["message"])

	w = doJSON(t, engine, http.MethodPost, "/api/bills", gin.H{
		"items": []gin.H{{"name": "Vidange", "unit_price": "10.00"}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Client information is required", decodeBody(t, w)["message"])

	w = doJSON(t, engine, http.MethodPatch, "/api/bills/1/paid", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid request", decodeBody(t, w)["message"])
}
