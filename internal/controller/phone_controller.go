package controller

import (
	"strconv"

	"mobiadvisor-be/internal/dto"
	"mobiadvisor-be/internal/pkg/serverutils"
	"mobiadvisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPhoneController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	FilterMetadata(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
	ReindexOne(ctx *fiber.Ctx) error
}

type phoneController struct {
	catalogService   service.ICatalogService
	indexerService   service.IIndexerService
	publisherService service.IPublisherService
}

func NewPhoneController(
	catalogService service.ICatalogService,
	indexerService service.IIndexerService,
	publisherService service.IPublisherService,
) IPhoneController {
	return &phoneController{
		catalogService:   catalogService,
		indexerService:   indexerService,
		publisherService: publisherService,
	}
}

func (c *phoneController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/phone/v1")
	h.Get("", c.List)
	h.Get("filters", c.FilterMetadata)
	h.Post("reindex", c.Reindex)
	h.Get(":id", c.Show)
	h.Post(":id/reindex", c.ReindexOne)
}

func (c *phoneController) List(ctx *fiber.Ctx) error {
	var req dto.ListPhonesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	phones, err := c.catalogService.List(ctx.Context(), req.ToFilters().ToFilters(), req.SortBy, req.Order, req.Limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list phones", dto.NewPhoneDTOs(phones)))
}

func (c *phoneController) Show(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Phone id must be numeric")
	}

	phone, err := c.catalogService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}
	if phone == nil {
		return fiber.NewError(fiber.StatusNotFound, "Phone not found")
	}

	res := dto.NewPhoneDTO(phone)
	return ctx.JSON(serverutils.SuccessResponse("Success show phone", &res))
}

func (c *phoneController) FilterMetadata(ctx *fiber.Ctx) error {
	agg, err := c.catalogService.FilterMetadata(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get filter metadata", dto.NewFilterMetadataResponse(agg)))
}

// Reindex rebuilds the whole embedding index synchronously. Intended for
// operators after a catalog import, not for end users.
func (c *phoneController) Reindex(ctx *fiber.Ctx) error {
	if err := c.indexerService.RebuildAll(ctx.Context()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success rebuild index", nil))
}

// ReindexOne queues an async re-embed of a single phone via the event bus.
func (c *phoneController) ReindexOne(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Phone id must be numeric")
	}

	if err := c.publisherService.PublishIndexPhone(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success queue phone reindex", nil))
}
