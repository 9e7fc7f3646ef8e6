package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/masses/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestError_Validation(t *testing.T) {
	fields := apperrors.FieldErrors{"name": "名称已存在", "type": ""}
	w, body := perform(t, func(c *gin.Context) { Error(c, fields.Err()) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, float64(apperrors.ErrCodeInvalidParams), body["code"])
	assert.Equal(t, map[string]interface{}{"name": "名称已存在"}, body["data"], "空提示不返回")
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"不存在", apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在"), http.StatusNotFound},
		{"并发冲突", apperrors.ErrConcurrencyConflict, http.StatusConflict},
		{"约束失败", apperrors.ErrConstraintViolation, http.StatusConflict},
		{"业务错误", apperrors.New(apperrors.ErrCodeTransactionClosed, "交易已取消"), http.StatusUnprocessableEntity},
		{"未知错误", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := perform(t, func(c *gin.Context) { Error(c, tt.err) })
			assert.Equal(t, tt.status, w.Code)
			assert.NotContains(t, body["message"], "boom", "内部错误不外泄")
		})
	}
}

func TestSuccess(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) { Success(c, gin.H{"id": 1}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["code"])
}
