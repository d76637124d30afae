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

	"github.com/noah-isme/announcement-api/internal/models"
	appErrors "github.com/noah-isme/announcement-api/pkg/errors"
)

func newTestContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestPageWritesHeaders(t *testing.T) {
	c, w := newTestContext("/api/announcements?language.equals=ENGLISH&page=1&size=2")

	Page(c, []int{1, 2}, models.Pagination{Page: 1, PageSize: 2, TotalCount: 5})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get(HeaderTotalCount))
	assert.Equal(t,
		`</api/announcements?language.equals=ENGLISH&page=2&size=2>; rel="next",`+
			`</api/announcements?language.equals=ENGLISH&page=0&size=2>; rel="prev",`+
			`</api/announcements?language.equals=ENGLISH&page=2&size=2>; rel="last",`+
			`</api/announcements?language.equals=ENGLISH&page=0&size=2>; rel="first"`,
		w.Header().Get(HeaderLink))

	var body struct {
		Data       []int             `json:"data"`
		Pagination models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []int{1, 2}, body.Data)
	assert.EqualValues(t, 5, body.Pagination.TotalCount)
}

func TestPageEmptyResult(t *testing.T) {
	c, w := newTestContext("/api/announcements")

	Page(c, []int{}, models.Pagination{Page: 0, PageSize: 20})

	assert.Equal(t, "0", w.Header().Get(HeaderTotalCount))
	assert.Equal(t, `</api/announcements?page=0&size=20>; rel="last",</api/announcements?page=0&size=20>; rel="first"`, w.Header().Get(HeaderLink))
	assert.JSONEq(t, `{"data":[],"pagination":{"page":0,"pageSize":20,"totalCount":0}}`, w.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	c, w := newTestContext("/")

	Error(c, appErrors.Clone(appErrors.ErrIDNull, "invalid id"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":{"code":"ID_NULL","message":"invalid id","status":400}}`, w.Body.String())

	c, w = newTestContext("/")
	Error(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, c.Errors, 1)
}

func TestAlertHeaders(t *testing.T) {
	c, w := newTestContext("/")

	Alert(c, "announcementApp", "announcement", "created", "12")
	Created(c, "/api/announcements/12", gin.H{"id": 12})

	assert.Equal(t, "announcementApp.announcement.created", w.Header().Get("X-announcementApp-alert"))
	assert.Equal(t, "12", w.Header().Get("X-announcementApp-params"))
	assert.Equal(t, "/api/announcements/12", w.Header().Get("Location"))
	assert.Equal(t, http.StatusCreated, w.Code)
}
