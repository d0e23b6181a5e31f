package handlers

import (
	"Foodia-Shopping/domain"
	"Foodia-Shopping/internal/api/presenters"
	"Foodia-Shopping/pkg/shopping"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type (
	ShoppingHandler interface {
		GetShoppingList(c *fiber.Ctx) error
		AddItem(c *fiber.Ctx) error
		UpdateItem(c *fiber.Ctx) error
		ToggleItem(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		ClearCompleted(c *fiber.Ctx) error
		ImportIngredients(c *fiber.Ctx) error
		ImportRecipe(c *fiber.Ctx) error
		ShareList(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		shoppingService shopping.ShoppingService
		validator       *validator.Validate
		log             *zap.Logger
	}
)

func NewShoppingHandler(shoppingService shopping.ShoppingService, validator *validator.Validate, log *zap.Logger) ShoppingHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &shoppingHandler{
		shoppingService: shoppingService,
		validator:       validator,
		log:             log.Named("http"),
	}
}

func (h *shoppingHandler) GetShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.shoppingService.GetShoppingList(c.Context(), userID)
	if err != nil {
		return h.fail(c, domain.MessageFailedGetShoppingList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShoppingList)
}

func (h *shoppingHandler) AddItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddShoppingItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddShoppingItem, err)
	}

	res, err := h.shoppingService.AddItem(c.Context(), *req, userID)
	if err != nil {
		return h.fail(c, domain.MessageFailedAddShoppingItem, err)
	}

	if res.Merged {
		return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMergeShoppingItem)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddShoppingItem)
}

func (h *shoppingHandler) UpdateItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")
	req := new(domain.UpdateShoppingItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateShoppingItem, err)
	}

	res, err := h.shoppingService.UpdateItem(c.Context(), itemID, *req, userID)
	if err != nil {
		return h.fail(c, domain.MessageFailedUpdateShoppingItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateShoppingItem)
}

func (h *shoppingHandler) ToggleItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")
	req := new(domain.ToggleShoppingItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleShoppingItem, err)
	}

	res, err := h.shoppingService.ToggleItem(c.Context(), itemID, *req, userID)
	if err != nil {
		return h.fail(c, domain.MessageFailedToggleShoppingItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleShoppingItem)
}

func (h *shoppingHandler) DeleteItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	if err := h.shoppingService.DeleteItem(c.Context(), itemID, userID); err != nil {
		return h.fail(c, domain.MessageFailedDeleteShoppingItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteShoppingItem)
}

func (h *shoppingHandler) ClearCompleted(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.shoppingService.ClearCompleted(c.Context(), userID)
	if err != nil {
		return h.fail(c, domain.MessageFailedClearCompleted, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessClearCompleted)
}

func (h *shoppingHandler) ImportIngredients(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ImportIngredientsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportIngredients, err)
	}

	res, err := h.shoppingService.ImportIngredients(c.Context(), *req, userID)
	if err != nil {
		return h.fail(c, domain.MessageFailedImportIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessImportIngredients)
}

func (h *shoppingHandler) ImportRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.shoppingService.ImportRecipe(c.Context(), recipeID, userID)
	if err != nil {
		return h.fail(c, domain.MessageFailedImportIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessImportIngredients)
}

func (h *shoppingHandler) ShareList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ShareShoppingListRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareShoppingList, err)
	}

	if err := h.shoppingService.ShareList(c.Context(), *req, userID); err != nil {
		return h.fail(c, domain.MessageFailedShareShoppingList, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessShareShoppingList)
}

// fail maps service errors to a status. Anything unrecognised is a 500 whose detail
// goes to the log, not the client.
func (h *shoppingHandler) fail(c *fiber.Ctx, message string, err error) error {
	status := shoppingErrorStatus(err)

	if errors.Is(err, domain.ErrEmptyItemName) {
		message = err.Error()
	}

	if status == fiber.StatusInternalServerError {
		h.log.Error(message,
			zap.String("path", c.Path()),
			zap.String("request_id", requestID(c)),
			zap.Error(err),
		)
		return presenters.ErrorResponse(c, status, message, nil)
	}

	return presenters.ErrorResponse(c, status, message, err)
}

func shoppingErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyItemName),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidToggle),
		errors.Is(err, domain.ErrNoIngredientLines),
		errors.Is(err, domain.ErrNoIngredients),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorizedAccess):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrShoppingItemNotFound),
		errors.Is(err, domain.ErrRecipeNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}
