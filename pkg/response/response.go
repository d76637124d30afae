package response

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/announcement-api/internal/models"
	appErrors "github.com/noah-isme/announcement-api/pkg/errors"
)

// Header names set on list and mutation responses.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderLink       = "Link"
)

// Envelope represents the common response contract.
type Envelope struct {
	Data       interface{}            `json:"data,omitempty"`
	Error      *appErrors.Error       `json:"error,omitempty"`
	Pagination *models.Pagination     `json:"pagination,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional pagination metadata.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination, meta ...map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	envelope := Envelope{Data: data, Pagination: pagination}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Created responds with HTTP 201 Created and a Location header.
func Created(c *gin.Context, location string, data interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	JSON(c, http.StatusCreated, data, nil)
}

// Page writes one page of results with X-Total-Count and RFC 5988 Link headers.
func Page(c *gin.Context, data interface{}, pagination models.Pagination) {
	c.Header(HeaderTotalCount, strconv.FormatInt(pagination.TotalCount, 10))
	if link := linkHeader(c.Request.URL, pagination); link != "" {
		c.Header(HeaderLink, link)
	}
	JSON(c, http.StatusOK, data, &pagination)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Alert sets the application alert headers describing a successful mutation, e.g.
// X-announcementApp-alert: announcementApp.announcement.created.
func Alert(c *gin.Context, appName, entity, action, param string) {
	c.Header("X-"+appName+"-alert", fmt.Sprintf("%s.%s.%s", appName, entity, action))
	c.Header("X-"+appName+"-params", url.QueryEscape(param))
}

func linkHeader(u *url.URL, p models.Pagination) string {
	if u == nil || p.PageSize <= 0 {
		return ""
	}
	last := p.TotalPages() - 1
	if last < 0 {
		last = 0
	}

	links := make([]string, 0, 4)
	if p.Page+1 <= last {
		links = append(links, pageLink(u, p.Page+1, p.PageSize, "next"))
	}
	if p.Page > 0 {
		links = append(links, pageLink(u, p.Page-1, p.PageSize, "prev"))
	}
	links = append(links, pageLink(u, last, p.PageSize, "last"))
	links = append(links, pageLink(u, 0, p.PageSize, "first"))
	return strings.Join(links, ",")
}

func pageLink(u *url.URL, page, size int, rel string) string {
	target := *u
	q := target.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	target.RawQuery = q.Encode()
	return fmt.Sprintf("<%s>; rel=\"%s\"", target.RequestURI(), rel)
}
