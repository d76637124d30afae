package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/noah-isme/announcement-api/internal/criteria"
	"github.com/noah-isme/announcement-api/internal/dto"
	"github.com/noah-isme/announcement-api/internal/models"
	appErrors "github.com/noah-isme/announcement-api/pkg/errors"
	"github.com/noah-isme/announcement-api/pkg/response"
)

const announcementEntity = "announcement"

type announcementService interface {
	Save(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error)
	PartialUpdate(ctx context.Context, patch *models.Announcement) (*models.Announcement, bool, error)
	FindOne(ctx context.Context, id int64) (*models.Announcement, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type announcementQueryService interface {
	FindByCriteria(ctx context.Context, c *criteria.AnnouncementCriteria, page models.PageRequest) (*models.AnnouncementPage, error)
	CountByCriteria(ctx context.Context, c *criteria.AnnouncementCriteria) (int64, error)
	FindActiveByDateAndLanguage(ctx context.Context, date time.Time, language *models.Language) ([]models.Announcement, error)
}

type announcementCommandService interface {
	CreateAnnouncement(ctx context.Context, req *dto.AnnouncementRequest) (*dto.AnnouncementResponse, error)
	UpdateAnnouncement(ctx context.Context, req *dto.AnnouncementRequest) (*dto.AnnouncementResponse, error)
	DeleteAnnouncement(ctx context.Context, req *dto.AnnouncementRequest) error
}

// AnnouncementHandlerConfig carries the settings the handler needs from config.Config.
type AnnouncementHandlerConfig struct {
	AppName         string
	BasePath        string
	DefaultPageSize int
	MaxPageSize     int
}

// AnnouncementHandler exposes the raw and structured announcement endpoints.
type AnnouncementHandler struct {
	raw     announcementService
	query   announcementQueryService
	command announcementCommandService
	cfg     AnnouncementHandlerConfig
}

// NewAnnouncementHandler builds a new handler.
func NewAnnouncementHandler(raw announcementService, query announcementQueryService, command announcementCommandService, cfg AnnouncementHandlerConfig) *AnnouncementHandler {
	if cfg.AppName == "" {
		cfg.AppName = "announcementApp"
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	return &AnnouncementHandler{raw: raw, query: query, command: command, cfg: cfg}
}

// Create godoc
// @Summary Create announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param payload body models.Announcement true "Announcement without id"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var announcement models.Announcement
	if err := c.ShouldBindJSON(&announcement); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}
	if announcement.ID != nil {
		response.Error(c, appErrors.ErrIDExists)
		return
	}
	created, err := h.raw.Save(c.Request.Context(), &announcement)
	if err != nil {
		response.Error(c, err)
		return
	}
	id := strconv.FormatInt(*created.ID, 10)
	response.Alert(c, h.cfg.AppName, announcementEntity, "created", id)
	response.Created(c, h.location(id), created)
}

// Update godoc
// @Summary Replace announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param id path int true "Announcement ID"
// @Param payload body models.Announcement true "Full announcement"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var announcement models.Announcement
	if err := c.ShouldBindJSON(&announcement); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}
	if err := h.checkTarget(c, announcement.ID); err != nil {
		response.Error(c, err)
		return
	}
	updated, err := h.raw.Update(c.Request.Context(), &announcement)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Alert(c, h.cfg.AppName, announcementEntity, "updated", strconv.FormatInt(*updated.ID, 10))
	response.JSON(c, http.StatusOK, updated, nil)
}

// PartialUpdate godoc
// @Summary Merge-patch announcement
// @Description Only non-null fields of the payload overwrite the stored announcement.
// @Tags Announcements
// @Accept json
// @Accept application/merge-patch+json
// @Produce json
// @Param id path int true "Announcement ID"
// @Param payload body models.Announcement true "Partial announcement"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /announcements/{id} [patch]
func (h *AnnouncementHandler) PartialUpdate(c *gin.Context) {
	var patch models.Announcement
	if err := c.ShouldBindWith(&patch, binding.JSON); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}
	if err := h.checkTarget(c, patch.ID); err != nil {
		response.Error(c, err)
		return
	}
	merged, found, err := h.raw.PartialUpdate(c.Request.Context(), &patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	response.Alert(c, h.cfg.AppName, announcementEntity, "updated", strconv.FormatInt(*merged.ID, 10))
	response.JSON(c, http.StatusOK, merged, nil)
}

// List godoc
// @Summary List announcements
// @Description Filter with <field>.<equals|notEquals|in|notIn|specified|greaterThan|greaterThanOrEqual|lessThan|lessThanOrEqual>.
// @Tags Announcements
// @Produce json
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size"
// @Param sort query string false "property,asc|desc"
// @Param distinct query bool false "Suppress duplicate rows"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	values := c.Request.URL.Query()
	filter, err := criteria.ParseAnnouncementCriteria(values)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}
	page, err := criteria.ParsePageRequest(values, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}
	result, err := h.query.FindByCriteria(c.Request.Context(), filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, result.Items, result.Pagination)
}

// Count godoc
// @Summary Count announcements
// @Tags Announcements
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /announcements/count [get]
func (h *AnnouncementHandler) Count(c *gin.Context) {
	filter, err := criteria.ParseAnnouncementCriteria(c.Request.URL.Query())
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}
	total, err := h.query.CountByCriteria(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, total, nil)
}

// Get godoc
// @Summary Get announcement by id
// @Tags Announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	announcement, err := h.raw.FindOne(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, announcement, nil)
}

// Delete godoc
// @Summary Delete announcement
// @Tags Announcements
// @Param id path int true "Announcement ID"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.raw.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Alert(c, h.cfg.AppName, announcementEntity, "deleted", strconv.FormatInt(id, 10))
	response.NoContent(c)
}

// CreateStructured godoc
// @Summary Create announcement from a validated request
// @Tags Announcements
// @Accept json
// @Produce json
// @Param payload body dto.AnnouncementRequest true "CREATE request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /announcements/create [post]
func (h *AnnouncementHandler) CreateStructured(c *gin.Context) {
	req, ok := bindAnnouncementRequest(c)
	if !ok {
		return
	}
	resp, err := h.command.CreateAnnouncement(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	id := strconv.FormatInt(*resp.Announcement.ID, 10)
	response.Alert(c, h.cfg.AppName, announcementEntity, "created", id)
	response.Created(c, h.location(id), resp)
}

// UpdateStructured godoc
// @Summary Update announcement from a validated request
// @Tags Announcements
// @Accept json
// @Produce json
// @Param payload body dto.AnnouncementRequest true "UPDATE request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /announcements/update [post]
func (h *AnnouncementHandler) UpdateStructured(c *gin.Context) {
	req, ok := bindAnnouncementRequest(c)
	if !ok {
		return
	}
	resp, err := h.command.UpdateAnnouncement(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Alert(c, h.cfg.AppName, announcementEntity, "updated", strconv.FormatInt(*resp.Announcement.ID, 10))
	response.JSON(c, http.StatusOK, resp, nil)
}

// DeleteStructured godoc
// @Summary Delete announcement from a validated request
// @Tags Announcements
// @Accept json
// @Param payload body dto.AnnouncementRequest true "DELETE request"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /announcements/delete [post]
func (h *AnnouncementHandler) DeleteStructured(c *gin.Context) {
	req, ok := bindAnnouncementRequest(c)
	if !ok {
		return
	}
	if err := h.command.DeleteAnnouncement(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Alert(c, h.cfg.AppName, announcementEntity, "deleted", strconv.FormatInt(*req.AnnouncementID, 10))
	response.NoContent(c)
}

// Active godoc
// @Summary Announcements active at a date
// @Description Returns announcements with startDate < date < endDate in the selected language.
// @Tags Announcements
// @Produce json
// @Param date query string true "RFC 3339 instant"
// @Param selectedLanguage query string true "TURKISH or ENGLISH"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /announcements/get/all/active [get]
func (h *AnnouncementHandler) Active(c *gin.Context) {
	var q dto.ActiveAnnouncementsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	if strings.TrimSpace(q.Date) == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	if strings.TrimSpace(q.SelectedLanguage) == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "selectedLanguage is required"))
		return
	}
	date, err := criteria.ParseTime(q.Date)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "date: "+err.Error()))
		return
	}
	language, err := models.ParseLanguage(q.SelectedLanguage)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "selectedLanguage: "+err.Error()))
		return
	}
	items, err := h.query.FindActiveByDateAndLanguage(c.Request.Context(), date, &language)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// MethodNotAllowed answers PUT and PATCH on the collection path.
func (h *AnnouncementHandler) MethodNotAllowed(c *gin.Context) {
	response.Error(c, appErrors.Clone(appErrors.ErrMethodNotAllowed, fmt.Sprintf("%s requires an announcement id in the path", c.Request.Method)))
}

// checkTarget enforces the raw update contract: body id present, equal to the path
// id, and stored.
func (h *AnnouncementHandler) checkTarget(c *gin.Context, bodyID *int64) error {
	if bodyID == nil {
		return appErrors.ErrIDNull
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if id != *bodyID {
		return appErrors.ErrIDInvalid
	}
	exists, err := h.raw.Exists(c.Request.Context(), id)
	if err != nil {
		return err
	}
	if !exists {
		return appErrors.ErrIDNotFound
	}
	return nil
}

func (h *AnnouncementHandler) location(id string) string {
	return strings.TrimRight(h.cfg.BasePath, "/") + "/announcements/" + id
}

func pathID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrIDInvalid, fmt.Sprintf("invalid announcement id %q", raw))
	}
	return id, nil
}

func bindAnnouncementRequest(c *gin.Context) (*dto.AnnouncementRequest, bool) {
	var req dto.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement request: "+err.Error()))
		return nil, false
	}
	return &req, true
}
