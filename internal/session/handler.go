package session

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sanfeliz/internal/catalog"
	"sanfeliz/internal/checkout"
	"sanfeliz/internal/messaging"
	"sanfeliz/internal/order"
)

type Handler struct {
	store         *Store
	catalog       *catalog.Service
	checkout      *checkout.Service
	whatsappPhone string
	publicKey     string
}

func NewHandler(
	store *Store,
	catalogService *catalog.Service,
	checkoutService *checkout.Service,
	whatsappPhone string,
	publicKey string,
) *Handler {
	return &Handler{
		store:         store,
		catalog:       catalogService,
		checkout:      checkoutService,
		whatsappPhone: whatsappPhone,
		publicKey:     publicKey,
	}
}

type view struct {
	ID                   string             `json:"id"`
	State                string             `json:"state"`
	Product              catalog.Product    `json:"product"`
	Mode                 string             `json:"mode"`
	Selections           map[string]any     `json:"selections"`
	Modifiers            map[string]string  `json:"modifiers"`
	Customization        bool               `json:"customization"`
	CustomizationAllowed bool               `json:"customization_allowed"`
	Notes                string             `json:"notes"`
	Total                int64              `json:"total"`
	Complete             bool               `json:"complete"`
	Missing              []catalog.Category `json:"missing"`
	Summary              []order.Line       `json:"summary"`
	Submission           SubmissionState    `json:"submission"`
	SubmitError          string             `json:"submit_error,omitempty"`
	Applied              *bool              `json:"applied,omitempty"`
}

func render(s *Session, applied *bool) view {
	e := s.Engine
	p := e.Product()

	selections := make(map[string]any)
	for _, category := range e.Required() {
		switch e.Rule().Kind {
		case order.KindSingleChoice:
			if id, ok := e.Selected(category); ok {
				selections[string(category)] = id
			}
		case order.KindBoundedMulti:
			counts := make(map[string]int)
			for _, opt := range p.Options[category] {
				if n := e.Count(category, opt.ID); n > 0 {
					counts[opt.ID] = n
				}
			}
			selections[string(category)] = counts
		}
	}

	modifiers := make(map[string]string)
	for _, category := range []catalog.Category{catalog.Addition, catalog.BundleType} {
		if id, ok := e.Modifier(category); ok {
			modifiers[string(category)] = id
		}
	}

	missing := e.Missing()
	if missing == nil {
		missing = []catalog.Category{}
	}

	return view{
		ID:                   s.ID,
		State:                e.State().String(),
		Product:              p,
		Mode:                 e.Rule().Kind.String(),
		Selections:           selections,
		Modifiers:            modifiers,
		Customization:        e.Customization(),
		CustomizationAllowed: e.CustomizationAllowed(),
		Notes:                e.Notes(),
		Total:                e.Total(),
		Complete:             e.IsComplete(),
		Missing:              missing,
		Summary:              e.Summary(),
		Submission:           s.Submission,
		SubmitError:          s.SubmitError,
		Applied:              applied,
	}
}

func (h *Handler) load(c *gin.Context) (*Session, bool) {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return s, true
}

// mutate applies fn to the session engine and renders the result.
func (h *Handler) mutate(c *gin.Context, fn func(e *order.Engine) bool) {
	s, ok := h.load(c)
	if !ok {
		return
	}

	var out view
	s.Do(func(s *Session) {
		applied := fn(s.Engine)
		out = render(s, &applied)
	})
	c.JSON(http.StatusOK, out)
}

// POST /sessions
func (h *Handler) Open(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	product, err := h.catalog.Configurable(c.Request.Context(), req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		log.Println("session: load product:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load product"})
		return
	}

	s := h.store.Open(product)

	var out view
	s.Do(func(s *Session) { out = render(s, nil) })
	c.JSON(http.StatusCreated, out)
}

// GET /sessions/:id
func (h *Handler) Get(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}

	var out view
	s.Do(func(s *Session) { out = render(s, nil) })
	c.JSON(http.StatusOK, out)
}

type optionRequest struct {
	Category catalog.Category `json:"category"`
	OptionID string           `json:"option_id"`
	Delta    int              `json:"delta"`
}

// POST /sessions/:id/select
func (h *Handler) Select(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.mutate(c, func(e *order.Engine) bool {
		return e.SelectSingle(req.Category, req.OptionID)
	})
}

// POST /sessions/:id/adjust
func (h *Handler) Adjust(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Delta != 1 && req.Delta != -1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delta must be 1 or -1"})
		return
	}
	h.mutate(c, func(e *order.Engine) bool {
		return e.AdjustCount(req.Category, req.OptionID, req.Delta)
	})
}

// POST /sessions/:id/modifier
func (h *Handler) Modifier(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.mutate(c, func(e *order.Engine) bool {
		return e.SelectModifier(req.Category, req.OptionID)
	})
}

// PUT /sessions/:id/customization
func (h *Handler) Customization(c *gin.Context) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.mutate(c, func(e *order.Engine) bool {
		return e.SetCustomization(req.Enabled)
	})
}

// PUT /sessions/:id/notes
func (h *Handler) Notes(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.mutate(c, func(e *order.Engine) bool {
		return e.SetNotes(req.Notes)
	})
}

// POST /sessions/:id/whatsapp
func (h *Handler) WhatsApp(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}

	var (
		message string
		err     error
		busy    bool
		closed  bool
	)
	s.Do(func(s *Session) {
		switch {
		case s.Engine.State() == order.StateClosed:
			closed = true
			return
		case s.Submission == SubmissionPending:
			busy = true
			return
		case s.OrderID == "":
			var o *checkout.Order
			if o, err = h.checkout.RecordWhatsApp(c.Request.Context(), s.Engine); err != nil {
				return
			}
			s.OrderID = o.ID
		}
		message = messaging.Message(s.Engine.Summary())
	})

	if closed {
		c.JSON(http.StatusGone, gin.H{"error": "session closed"})
		return
	}
	if busy {
		c.JSON(http.StatusConflict, gin.H{"error": "checkout already in progress"})
		return
	}
	if errors.Is(err, checkout.ErrIncomplete) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Por favor selecciona todas las opciones requeridas"})
		return
	}
	if err != nil {
		log.Println("session: record whatsapp order:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record order"})
		return
	}

	// hand-off done: Open -> Closed
	_ = h.store.Close(s.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"url":     messaging.DeepLink(h.whatsappPhone, message),
	})
}

// POST /sessions/:id/checkout
func (h *Handler) Checkout(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}

	var (
		sub  *checkout.Submission
		err  error
		busy bool
	)
	s.Do(func(s *Session) {
		if s.Submission == SubmissionPending {
			busy = true
			return
		}
		sub, err = h.checkout.Prepare(c.Request.Context(), s.Engine)
		if err == nil {
			s.Submission = SubmissionPending
			s.SubmitError = ""
		}
	})

	if busy {
		c.JSON(http.StatusConflict, gin.H{"error": "checkout already in progress"})
		return
	}
	if errors.Is(err, checkout.ErrIncomplete) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Por favor selecciona todas las opciones requeridas"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, _, err := h.checkout.Complete(c.Request.Context(), sub)

	var closed bool
	s.Do(func(s *Session) {
		if s.Engine.State() == order.StateClosed {
			closed = true
			return
		}
		if err != nil {
			s.Submission = SubmissionFailed
			s.SubmitError = err.Error()
			return
		}
		s.Submission = SubmissionSucceeded
		s.PreferenceID = result.ID
	})

	if closed {
		c.JSON(http.StatusGone, gin.H{"error": "session closed"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":      "Error creating preference",
			"submission": SubmissionFailed,
		})
		return
	}

	// hand-off done: Open -> Closed
	_ = h.store.Close(s.ID)

	c.JSON(http.StatusOK, gin.H{
		"preference_id": result.ID,
		"init_point":    result.InitPoint,
		"public_key":    h.publicKey,
		"submission":    SubmissionSucceeded,
	})
}

// DELETE /sessions/:id
func (h *Handler) Close(c *gin.Context) {
	if err := h.store.Close(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
