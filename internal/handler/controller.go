package handler

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"keyword-go/internal/service"
	"keyword-go/pkg/coerce"
	"keyword-go/pkg/logger"
)

type Controller struct {
	service service.KeywordService
	config  ControllerConfig
	log     *logger.Logger
}

type ControllerConfig struct {
	BodyLimitBytes  int
	ProviderEnabled bool
}

type keywordsRequest struct {
	Keywords   []coerce.Record `json:"keywords"`
	Descending *bool           `json:"descending"`
}

type intentRequest struct {
	Phrases []string `json:"phrases"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Provider  bool   `json:"provider_enabled"`
}

func NewController(svc service.KeywordService, config ControllerConfig) *Controller {
	return &Controller{
		service: svc,
		config:  config,
		log:     logger.GetLogger().WithField("component", "http"),
	}
}

// NewApp builds the fiber application with middleware and routes.
func (ctl *Controller) NewApp() *fiber.App {
	cfg := fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          ctl.handleError,
	}
	if ctl.config.BodyLimitBytes > 0 {
		cfg.BodyLimit = ctl.config.BodyLimitBytes
	}

	app := fiber.New(cfg)
	app.Use(recover.New())
	app.Use(requestID())
	app.Use(ctl.logRequests)
	ctl.Register(app)
	return app
}

func (ctl *Controller) Register(app *fiber.App) {
	app.Get("/health", ctl.Health)

	v1 := app.Group("/api/v1")
	v1.Post("/keywords/score", ctl.ScoreKeywords)
	v1.Post("/keywords/sort", ctl.SortKeywords)
	v1.Post("/keywords/rank", ctl.RankKeywords)
	v1.Post("/intent", ctl.ClassifyIntent)
	v1.Post("/longtail", ctl.Longtail)
}

func (ctl *Controller) Health(c *fiber.Ctx) error {
	return jsonSuccess(c, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Provider:  ctl.config.ProviderEnabled,
	})
}

func (ctl *Controller) ScoreKeywords(c *fiber.Ctx) error {
	var req keywordsRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	return jsonSuccess(c, ctl.service.Score(req.Keywords))
}

func (ctl *Controller) SortKeywords(c *fiber.Ctx) error {
	var req keywordsRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	return jsonSuccess(c, ctl.service.Sort(req.Keywords, descending(req.Descending)))
}

func (ctl *Controller) RankKeywords(c *fiber.Ctx) error {
	var req keywordsRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	return jsonSuccess(c, ctl.service.Rank(req.Keywords, descending(req.Descending)))
}

func (ctl *Controller) ClassifyIntent(c *fiber.Ctx) error {
	var req intentRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	return jsonSuccess(c, ctl.service.Classify(req.Phrases))
}

func (ctl *Controller) Longtail(c *fiber.Ctx) error {
	var req service.LongtailRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	result, err := ctl.service.Longtail(c.UserContext(), req)
	switch {
	case errors.Is(err, service.ErrEmptySeed), errors.Is(err, service.ErrProviderDisabled):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrProviderUnavailable):
		ctl.log.WithError(err).WithField("request_id", requestIDOf(c)).Warn("Provider request failed")
		return fiber.NewError(fiber.StatusBadGateway, service.ErrProviderUnavailable.Error())
	case err != nil:
		return err
	}
	return jsonSuccess(c, result)
}

func (ctl *Controller) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		ctl.log.WithError(err).WithField("request_id", requestIDOf(c)).Error("Unhandled request error")
	}
	return jsonError(c, code, message)
}

func (ctl *Controller) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	ctl.log.WithFields(map[string]interface{}{
		"request_id":  requestIDOf(c),
		"method":      c.Method(),
		"path":        c.Path(),
		"status":      status,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Request handled")
	return err
}

func decodeBody(c *fiber.Ctx, v interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "request body is required")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body: "+err.Error())
	}
	return nil
}

func descending(v *bool) bool {
	return v == nil || *v
}
