package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/rental-backoffice/database"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/utils"
)

var initOnce sync.Once

func initTestEnv(t *testing.T) {
	t.Helper()
	initOnce.Do(func() {
		utils.InitLogger()
		utils.SetJWTSecret("test-secret")
		gin.SetMode(gin.TestMode)
		if err := utils.RegisterValidators(); err != nil {
			panic(err)
		}
	})
}

// setupTestDB opens a private in-memory sqlite database named after the test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	initTestEnv(t)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

func strPtr(s string) *string { return &s }

func seedEmployee(t *testing.T, db *gorm.DB, id, role string) models.Employee {
	t.Helper()
	e := models.Employee{
		ID:        id,
		FirstName: strings.ToUpper(id[:1]) + id[1:],
		LastName:  "Test",
		Email:     id + "@example.com",
		Password:  "unused",
		Role:      role,
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func tokenFor(t *testing.T, e models.Employee) string {
	t.Helper()
	token, err := utils.GenerateToken(e.ID, e.Role)
	require.NoError(t, err)
	return token
}
