package controller

import (
	"mobiadvisor-be/internal/dto"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/internal/pkg/serverutils"
	"mobiadvisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdvisorController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Compare(ctx *fiber.Ctx) error
}

type advisorController struct {
	advisorService service.IAdvisorService
	logger         logger.ILogger
}

func NewAdvisorController(advisorService service.IAdvisorService, log logger.ILogger) IAdvisorController {
	return &advisorController{
		advisorService: advisorService,
		logger:         log,
	}
}

func (c *advisorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/advisor/v1")
	h.Post("chat", c.Chat)
	h.Post("compare", c.Compare)
}

func (c *advisorController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	requestId := uuid.NewString()
	c.logger.Info("advisor_controller", "chat request received", map[string]interface{}{
		"request_id":    requestId,
		"query_length":  len(req.Query),
		"history_turns": len(req.History),
	})

	res := c.advisorService.Process(ctx.Context(), req.Query, req.Filters.ToFilters(), req.ToHistory())

	if res.Error != "" {
		c.logger.Warn("advisor_controller", "chat answered degraded", map[string]interface{}{
			"request_id": requestId,
			"error":      res.Error,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process query", dto.NewChatResponse(res)))
}

func (c *advisorController) Compare(ctx *fiber.Ctx) error {
	var req dto.CompareRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	analysis, err := c.advisorService.CompareMany(ctx.Context(), req.PhoneIds)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compare phones", dto.CompareResponse{Analysis: analysis}))
}
