package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsmarsh/family-bingo/config"
	"github.com/tsmarsh/family-bingo/services"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func setupWinnerRouter(t *testing.T) (*gin.Engine, *services.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	s := services.NewStore(db)
	Use(s)

	r := gin.New()
	r.GET("/api/winner-qr", GetWinnerQR)
	return r, s
}

func seedWinnerEvent(t *testing.T, s *services.Store) {
	t.Helper()
	_, err := s.CreateRelative("Grandma", []string{"Back in my day", "Eat more", "Who wants pie"})
	require.NoError(t, err)
	_, err = s.CreateRelative("Uncle Joe", []string{"Let me tell you", "Stocks are up"})
	require.NoError(t, err)
	_, err = s.CreateRelative("Aunt Sue", []string{"Bless your heart"})
	require.NoError(t, err)

	maxRel, perRel := 3, 3
	_, err = s.SaveEvent("thanksgiving2024", &maxRel, &perRel)
	require.NoError(t, err)
}

func TestGetWinnerQRMissingParams(t *testing.T) {
	r, _ := setupWinnerRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/winner-qr?player=Alice", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWinnerQRUnknownEventIs404(t *testing.T) {
	r, _ := setupWinnerRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/winner-qr?event_id=nope&player=Alice", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Event not found")
}

func TestGetWinnerQRWithoutBingoIs409(t *testing.T) {
	r, s := setupWinnerRouter(t)
	seedWinnerEvent(t, s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/winner-qr?event_id=thanksgiving2024&player=Alice", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetWinnerQRWithBingoReturnsPNG(t *testing.T) {
	r, s := setupWinnerRouter(t)
	seedWinnerEvent(t, s)

	// Complete row 0 on Alice's 3x3 card.
	for i := 0; i < 3; i++ {
		_, _, err := s.ToggleCell("thanksgiving2024", "Alice", i)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/winner-qr?event_id=thanksgiving2024&player=Alice", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	png := w.Body.Bytes()
	require.NotEmpty(t, png)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
