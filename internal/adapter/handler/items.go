package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/meeting-minute/backend/errors"
	"github.com/meeting-minute/backend/internal/adapter/dto"
)

// ItemsController is a static CRUD demo. It has no interaction with the
// meeting pipeline.
type ItemsController struct{}

// NewItemsController creates a new items controller
func NewItemsController() *ItemsController {
	return &ItemsController{}
}

// List returns the fixed item list
// @Summary  List all items
// @Tags     Items
// @Produce  json
// @Router   /api/v1/items [get]
func (ic *ItemsController) List(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.ItemsListResponse{Items: []string{"item1", "item2", "item3"}})
}

// Get returns an item by ID
// @Summary  Get an item by ID
// @Tags     Items
// @Produce  json
// @Param    id  path  int  true  "Item ID"
// @Router   /api/v1/items/{id} [get]
func (ic *ItemsController) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return HandleError(nil, c, errors.ErrInvalidArgument("Invalid item ID"))
	}
	switch id {
	case 1:
		return c.JSON(http.StatusOK, dto.Item{ItemID: 1, Name: "item1"})
	case 2:
		return c.JSON(http.StatusOK, dto.Item{ItemID: 2, Name: "item2"})
	default:
		return HandleError(nil, c, errors.ErrNotFound("Item"))
	}
}

// Create echoes the posted item back
// @Summary  Create a new item
// @Tags     Items
// @Accept   json
// @Produce  json
// @Router   /api/v1/items [post]
func (ic *ItemsController) Create(c echo.Context) error {
	var item map[string]interface{}
	if err := c.Bind(&item); err != nil {
		return HandleError(nil, c, errors.ErrInvalidArgument("Invalid payload"))
	}
	return c.JSON(http.StatusOK, item)
}

// Update echoes the posted item back with its ID
// @Summary  Update an item by ID
// @Tags     Items
// @Accept   json
// @Produce  json
// @Param    id  path  int  true  "Item ID"
// @Router   /api/v1/items/{id} [put]
func (ic *ItemsController) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return HandleError(nil, c, errors.ErrInvalidArgument("Invalid item ID"))
	}
	var item map[string]interface{}
	if err := c.Bind(&item); err != nil {
		return HandleError(nil, c, errors.ErrInvalidArgument("Invalid payload"))
	}
	if item == nil {
		item = map[string]interface{}{}
	}
	item["item_id"] = id
	return c.JSON(http.StatusOK, item)
}
