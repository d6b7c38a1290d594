package response

import (
	"Newsroom/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func run(t *testing.T, err error) body {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, err)

	var b body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func TestError_MapsBusinessCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrNewsNotFound, NotFound},
		{service.ErrForbidden, Forbidden},
		{service.ErrEmptyComment, BadRequest},
		{fmt.Errorf("wrap: %w", service.ErrUserNotFound), NotFound},
		{service.ErrRecountRunning, BadRequest},
	}
	for _, tc := range cases {
		b := run(t, tc.err)
		assert.Equal(t, tc.code, b.Code, tc.err.Error())
		assert.Equal(t, tc.err.Error(), b.Message)
	}
}

func TestError_HidesUnknownErrors(t *testing.T) {
	b := run(t, errors.New("dial tcp 10.0.0.3:3306: connection refused"))
	assert.Equal(t, InternalServerError, b.Code)
	assert.Equal(t, service.UnExpectedError.Error(), b.Message)
}
