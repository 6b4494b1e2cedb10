package export

import (
	"bytes"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"catalog-exporter/core/logger"
)

// Handler handles HTTP requests for exports.
type Handler struct {
	service *Service
	journal *Journal
	log     *zap.Logger
}

// NewHandler creates a new HTTP handler. The journal may be nil.
func NewHandler(service *Service, journal *Journal, log *zap.Logger) *Handler {
	return &Handler{service: service, journal: journal, log: log}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/export")
	group.Get("/products", h.HandleListProducts)
	group.Post("/", h.HandleRunExport)
	group.Get("/runs", h.HandleListRuns)
}

// HandleListProducts returns the eligible products, optionally narrowed by
// the filter query parameter.
func (h *Handler) HandleListProducts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	products, err := h.service.EligibleProducts(c.Context(), c.Query("filter"))
	if err != nil {
		l.Error("Product list fetch failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"products": products})
}

// ExportRequest is the POST /export payload.
type ExportRequest struct {
	Products  []string `json:"products"`
	Filter    string   `json:"filter"`
	Frames    []int    `json:"frames"`
	AllowList string   `json:"allowList"`
	Filename  string   `json:"filename"`
}

// HandleRunExport runs a full export and streams the CSV back.
func (h *Handler) HandleRunExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	var req ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	opts := Options{
		Products: req.Products,
		Filter:   req.Filter,
		Frames:   req.Frames,
	}
	if req.AllowList != "" {
		opts.AllowList = ParseAllowList(req.AllowList)
	}

	started := time.Now()
	result, err := h.service.Run(c.Context(), opts)
	if err != nil {
		if errors.Is(err, ErrNoEligibleProducts) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Export run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	filename := req.Filename
	if filename == "" {
		filename = h.service.cfg.OutputFile
	}

	if h.journal != nil {
		rec := &RunRecord{
			ID:         uuid.NewString(),
			StartedAt:  started,
			FinishedAt: time.Now(),
			Products:   result.Products,
			Skipped:    result.Skipped,
			Rows:       result.Set.Len(),
			Matched:    result.MatchStats.Matched,
			Unmatched:  result.MatchStats.Unmatched,
			OutputFile: filename,
		}
		if err := h.journal.Record(c.Context(), rec); err != nil {
			l.Warn("Journal write failed", zap.Error(err))
		}
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, result.Set); err != nil {
		l.Error("CSV rendering failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Export generated",
		zap.Int("rows", result.Set.Len()),
		zap.Int("products", result.Products),
		zap.Int("skipped", result.Skipped),
	)

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// HandleListRuns returns the most recent journaled runs.
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	if h.journal == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "run journal not configured",
		})
	}

	limit := c.QueryInt("limit", 20)
	runs, err := h.journal.Recent(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"runs": runs})
}
