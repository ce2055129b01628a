package contact

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/outreach-api/internal/handler"
	"github.com/jwalitptl/outreach-api/internal/middleware"
	"github.com/jwalitptl/outreach-api/internal/model"
	"github.com/jwalitptl/outreach-api/internal/service/ingest"
	"github.com/jwalitptl/outreach-api/internal/service/roster"
	"github.com/jwalitptl/outreach-api/pkg/errors"
	"github.com/jwalitptl/outreach-api/pkg/httputil"
	"github.com/jwalitptl/outreach-api/pkg/metrics"
)

type Handler struct {
	rosters *roster.Manager
	metrics *metrics.Metrics
}

func NewHandler(rosters *roster.Manager, m *metrics.Metrics) *Handler {
	return &Handler{rosters: rosters, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	contacts := r.Group("/contacts")
	{
		contacts.POST("/upload", h.Upload)
		contacts.GET("", h.List)
		contacts.GET("/shifts", h.ListShifts)
		contacts.GET("/selected", h.ListSelected)
		contacts.PUT("/search", h.Search)
		contacts.PUT("/shift-filter", h.ToggleShiftFilter)
		contacts.DELETE("/shift-filter", h.ClearShiftFilter)
		contacts.PUT("/selection", h.ToggleSelection)
		contacts.PUT("/selection/all", h.ToggleSelectAll)
		contacts.DELETE("", h.Clear)
	}
}

func (h *Handler) userRoster(c *gin.Context) (*roster.Roster, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return nil, false
	}
	return h.rosters.Get(userID), true
}

// Upload ingests a spreadsheet and replaces the operator's roster with its
// contacts. A parse failure leaves the existing roster untouched.
func (h *Handler) Upload(c *gin.Context) {
	r, ok := h.userRoster(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("missing file upload", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("failed to open upload", err))
		return
	}
	defer file.Close()

	var contacts []*model.Contact
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xlsx":
		contacts, err = ingest.ParseXLSX(file)
	default:
		contacts, err = ingest.ParseCSV(file)
	}
	if err != nil {
		if h.metrics != nil {
			h.metrics.IngestFailures.Inc()
		}
		httputil.RespondWithError(c, err)
		return
	}

	r.Load(contacts)
	if h.metrics != nil {
		h.metrics.ContactsIngested.Add(float64(len(contacts)))
	}

	log.Info().Str("file", fileHeader.Filename).
		Int("contacts", len(contacts)).Msg("roster loaded")

	httputil.RespondWithSuccess(c, model.UploadResult{
		Loaded: len(contacts),
		Shifts: ingest.UniqueShiftValues(contacts),
	})
}

func (h *Handler) List(c *gin.Context) {
	r, ok := h.userRoster(c)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, r.View())
}

func (h *Handler) ListShifts(c *gin.Context) {
	r, ok := h.userRoster(c)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, ingest.UniqueShiftValues(r.Contacts()))
}

func (h *Handler) ListSelected(c *gin.Context) {
	r, ok := h.userRoster(c)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, r.SelectedContacts())
}

func (h *Handler) Search(c *gin.Context) {
	r, ok := h.userRoster(c)
	if !ok {
		return
	}

	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(middleware.FormatBindingError(err), err))
		return
	}

	r.SetSearchTerm(req.Term)
	httputil.RespondWithSuccess(c, r.View())
}

// ToggleShiftFilter activates the given shift filter, or clears it when it is
// already active.
func (h *Handler) ToggleShiftFilter(c *gin.Context) {
	r, ok := h.userRoster(c)
	if !ok {
		return
	}

	var req model.ShiftFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(middleware.FormatBindingError(err), err))
		return
	}

	r.SetActiveFilter(req.Shift)
	httputil.RespondWithSuccess(c, r.View())
}

func (h *Handler) ClearShiftFilter(c *gin.Context) {
	r, ok := h.userRoster(c)
	if !ok {
		return
	}
	r.ShowAll()
	httputil.RespondWithSuccess(c, r.View())
}

func (h *Handler) ToggleSelection(c *gin.Context) {
	r, ok := h.userRoster(c)
	if !ok {
		return
	}

	var req model.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(middleware.FormatBindingError(err), err))
		return
	}

	if err := r.ToggleSelect(req.Phone, *req.Selected); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, r.View())
}

func (h *Handler) ToggleSelectAll(c *gin.Context) {
	r, ok := h.userRoster(c)
	if !ok {
		return
	}

	var req model.SelectAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(middleware.FormatBindingError(err), err))
		return
	}

	r.ToggleSelectAll(*req.Selected)
	httputil.RespondWithSuccess(c, r.View())
}

func (h *Handler) Clear(c *gin.Context) {
	r, ok := h.userRoster(c)
	if !ok {
		return
	}
	r.Clear()
	httputil.RespondWithSuccess(c, r.View())
}
