package message

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/outreach-api/internal/handler"
	"github.com/jwalitptl/outreach-api/internal/middleware"
	"github.com/jwalitptl/outreach-api/internal/model"
	"github.com/jwalitptl/outreach-api/internal/service/composer"
	"github.com/jwalitptl/outreach-api/internal/service/dispatch"
	"github.com/jwalitptl/outreach-api/internal/service/roster"
	"github.com/jwalitptl/outreach-api/pkg/errors"
	"github.com/jwalitptl/outreach-api/pkg/httputil"
)

type Handler struct {
	rosters  *roster.Manager
	composer *composer.Service
	dispatch *dispatch.Service
}

func NewHandler(rosters *roster.Manager, composerSvc *composer.Service, dispatchSvc *dispatch.Service) *Handler {
	return &Handler{
		rosters:  rosters,
		composer: composerSvc,
		dispatch: dispatchSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")
	{
		messages.PUT("/template", h.SetTemplate)
		messages.GET("/template", h.GetTemplate)
		messages.POST("/preview", h.Preview)
		messages.POST("/send", h.Send)
		messages.GET("/status", h.Status)
		messages.DELETE("/status", h.ResetStatus)
	}
}

func (h *Handler) SetTemplate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}

	var req model.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(middleware.FormatBindingError(err), err))
		return
	}

	h.composer.SetMessage(userID, req.Message)
	httputil.RespondWithSuccess(c, model.TemplateRequest{Message: req.Message})
}

func (h *Handler) GetTemplate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}
	httputil.RespondWithSuccess(c, model.TemplateRequest{Message: h.composer.Message(userID)})
}

// Preview renders the template against a sample contact: the one named by
// phone key, else the first selected contact, else the first contact of the
// current view. With no contact loaded the template comes back unchanged.
func (h *Handler) Preview(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}

	var req model.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(middleware.FormatBindingError(err), err))
		return
	}

	template := req.Message
	if template == "" {
		template = h.composer.Message(userID)
	}

	r := h.rosters.Get(userID)
	sample := h.sampleContact(r, req.Phone)
	httputil.RespondWithSuccess(c, model.PreviewResponse{
		Preview: composer.RenderPreview(template, sample),
	})
}

func (h *Handler) sampleContact(r *roster.Roster, phone string) *model.Contact {
	if phone != "" {
		for _, contact := range r.Contacts() {
			if contact.PhoneNormalized == phone {
				return contact
			}
		}
		return nil
	}
	if selected := r.SelectedContacts(); len(selected) > 0 {
		return selected[0]
	}
	if view := r.View(); len(view.Contacts) > 0 {
		return view.Contacts[0]
	}
	return nil
}

// Send dispatches the rendered message to every selected contact through the
// delivery webhook.
func (h *Handler) Send(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}

	var req model.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(middleware.FormatBindingError(err), err))
		return
	}

	message := req.Message
	if message == "" {
		message = h.composer.Message(userID)
	}

	r := h.rosters.Get(userID)
	result, err := h.dispatch.Send(c.Request.Context(), userID, r.SelectedContacts(), message)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) Status(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}
	httputil.RespondWithSuccess(c, h.dispatch.Status(userID))
}

func (h *Handler) ResetStatus(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user"))
		return
	}
	h.dispatch.ResetStatus(userID)
	httputil.RespondWithSuccess(c, h.dispatch.Status(userID))
}
