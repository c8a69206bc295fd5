package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership/internal/api/pipeline"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// InventoryHandler serves the public inventory pages, the management pages
// and their form submissions.
type InventoryHandler struct {
	inventory ports.InventoryService
	runner    *pipeline.Runner
	pages     *Pages
}

func NewInventoryHandler(inventory ports.InventoryService, runner *pipeline.Runner, pages *Pages) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, runner: runner, pages: pages}
}

// --- Public views ---

// Home renders the landing page.
func (h *InventoryHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageHome, h.pages.Data(c, "Home"))
}

// ClassificationView lists the vehicles of one classification.
func (h *InventoryHandler) ClassificationView(c echo.Context) error {
	id, err := pathID(c, "classification_id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	class, err := h.inventory.Classification(ctx, id)
	if err != nil {
		return lookupError(err)
	}
	items, err := h.inventory.ItemsByClassification(ctx, id)
	if err != nil {
		return lookupError(err)
	}

	data := h.pages.Data(c, class.Name+" vehicles")
	data.Classification = class
	data.Items = items
	return c.Render(http.StatusOK, view.PageClassification, data)
}

// DetailView shows a single vehicle.
func (h *InventoryHandler) DetailView(c echo.Context) error {
	id, err := pathID(c, "inv_id")
	if err != nil {
		return err
	}
	item, err := h.inventory.Item(c.Request().Context(), id)
	if err != nil {
		return lookupError(err)
	}
	data := h.pages.Data(c, fmt.Sprintf("%d %s", item.Year, item.Name()))
	data.Item = item
	return c.Render(http.StatusOK, view.PageDetail, data)
}

// GetInventoryJSON returns the vehicles of a classification.
//
// @Summary      List vehicles of a classification
// @Tags         inventory
// @Produce      json
// @Param        classification_id  path      int  true  "Classification ID"
// @Success      200                {array}   domain.InventoryItem
// @Failure      404                {object}  errorResponse
// @Failure      500                {object}  errorResponse
// @Router       /inv/getInventory/{classification_id} [get]
func (h *InventoryHandler) GetInventoryJSON(c echo.Context) error {
	id, err := pathID(c, "classification_id")
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "classification not found"})
	}
	items, err := h.inventory.ItemsByClassification(c.Request().Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "classification not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// --- Management views ---

// ManagementView is the inventory dashboard of employees and admins.
func (h *InventoryHandler) ManagementView(c echo.Context) error {
	data := h.pages.Data(c, "Vehicle Management")
	list, err := h.pages.ClassificationList(c.Request().Context(), 0)
	if err != nil {
		return err
	}
	data.ClassificationList = list
	return c.Render(http.StatusOK, view.PageInventory, data)
}

func (h *InventoryHandler) AddClassificationView(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageAddClassification, h.pages.Data(c, "Add New Classification"))
}

func (h *InventoryHandler) AddInventoryView(c echo.Context) error {
	data := h.pages.Data(c, "Add New Vehicle")
	list, err := h.pages.ClassificationList(c.Request().Context(), 0)
	if err != nil {
		return err
	}
	data.ClassificationList = list
	return c.Render(http.StatusOK, view.PageAddInventory, data)
}

func (h *InventoryHandler) EditView(c echo.Context) error {
	return h.itemPage(c, view.PageEditInventory, "Edit")
}

func (h *InventoryHandler) DeleteView(c echo.Context) error {
	return h.itemPage(c, view.PageDeleteInventory, "Delete")
}

func (h *InventoryHandler) itemPage(c echo.Context, page, verb string) error {
	id, err := pathID(c, "inv_id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	item, err := h.inventory.Item(ctx, id)
	if err != nil {
		return lookupError(err)
	}

	data := h.pages.Data(c, verb+" "+item.Name())
	data.Item = item
	data.Fields = itemFields(item)
	if page == view.PageEditInventory {
		list, err := h.pages.ClassificationList(ctx, item.ClassificationID)
		if err != nil {
			return err
		}
		data.ClassificationList = list
	}
	return c.Render(http.StatusOK, page, data)
}

// --- Submissions ---

// AddClassification stores a new classification.
func (h *InventoryHandler) AddClassification(c echo.Context) error {
	return pipeline.Run(h.runner, c, pipeline.Op[classificationForm]{
		Name: "add_classification",
		Form: func(*classificationForm) pipeline.Form {
			return pipeline.Form{View: view.PageAddClassification, Title: "Add New Classification"}
		},
		Echo: func(f *classificationForm) map[string]string {
			return map[string]string{"classification_name": f.Name}
		},
		Apply: func(ctx context.Context, v pipeline.Valid[classificationForm]) (pipeline.Success, error) {
			class, err := h.inventory.AddClassification(ctx, v.Form().Name)
			if err != nil {
				return pipeline.Success{}, err
			}
			return pipeline.Success{
				Notice:   fmt.Sprintf("%s was successfully added to Classification.", class.Name),
				Redirect: "/inv/",
			}, nil
		},
		FailureNotice: func(f *classificationForm) string {
			return fmt.Sprintf("Sorry, %s could not be added.", f.Name)
		},
	})
}

// AddInventory stores a new vehicle.
func (h *InventoryHandler) AddInventory(c echo.Context) error {
	return pipeline.Run(h.runner, c, pipeline.Op[vehicleForm]{
		Name: "add_inventory",
		Form: func(*vehicleForm) pipeline.Form {
			return pipeline.Form{View: view.PageAddInventory, Title: "Add New Vehicle"}
		},
		Echo: vehicleFields,
		Decorate: func(ctx context.Context, f *vehicleForm, data *view.Data) error {
			return h.decorateVehicle(ctx, f, data)
		},
		Apply: func(ctx context.Context, v pipeline.Valid[vehicleForm]) (pipeline.Success, error) {
			spec, err := toVehicleSpec(v.Form())
			if err != nil {
				return pipeline.Success{}, err
			}
			item, err := h.inventory.AddItem(ctx, spec)
			if err != nil {
				return pipeline.Success{}, err
			}
			return pipeline.Success{
				Notice:   fmt.Sprintf("The %s was successfully added.", item.Name()),
				Redirect: "/inv/",
			}, nil
		},
		FailureNotice: func(f *vehicleForm) string {
			return fmt.Sprintf("Sorry, the %s %s could not be added.", f.Make, f.Model)
		},
	})
}

// UpdateInventory replaces every editable field of a vehicle.
func (h *InventoryHandler) UpdateInventory(c echo.Context) error {
	return pipeline.Run(h.runner, c, pipeline.Op[updateVehicleForm]{
		Name: "update_inventory",
		Form: func(f *updateVehicleForm) pipeline.Form {
			return pipeline.Form{View: view.PageEditInventory, Title: "Edit " + f.Vehicle.Make + " " + f.Vehicle.Model}
		},
		Echo: func(f *updateVehicleForm) map[string]string {
			fields := vehicleFields(&f.Vehicle)
			fields["inv_id"] = f.ID
			return fields
		},
		Decorate: func(ctx context.Context, f *updateVehicleForm, data *view.Data) error {
			return h.decorateVehicle(ctx, &f.Vehicle, data)
		},
		Apply: func(ctx context.Context, v pipeline.Valid[updateVehicleForm]) (pipeline.Success, error) {
			id, err := parseID(v.Form().ID)
			if err != nil {
				return pipeline.Success{}, err
			}
			spec, err := toVehicleSpec(&v.Form().Vehicle)
			if err != nil {
				return pipeline.Success{}, err
			}
			item, err := h.inventory.UpdateItem(ctx, id, spec)
			if err != nil {
				return pipeline.Success{}, err
			}
			return pipeline.Success{
				Notice:   fmt.Sprintf("The %s was successfully updated.", item.Name()),
				Redirect: "/inv/",
			}, nil
		},
		FailureNotice: func(f *updateVehicleForm) string {
			return fmt.Sprintf("Sorry, the update of %s %s failed.", f.Vehicle.Make, f.Vehicle.Model)
		},
	})
}

// DeleteInventory removes a vehicle.
func (h *InventoryHandler) DeleteInventory(c echo.Context) error {
	return pipeline.Run(h.runner, c, pipeline.Op[deleteVehicleForm]{
		Name: "delete_inventory",
		Form: func(f *deleteVehicleForm) pipeline.Form {
			return pipeline.Form{View: view.PageDeleteInventory, Title: "Delete " + f.Make + " " + f.Model}
		},
		Echo: func(f *deleteVehicleForm) map[string]string {
			return map[string]string{
				"inv_id":    f.ID,
				"inv_make":  f.Make,
				"inv_model": f.Model,
				"inv_year":  f.Year,
				"inv_price": f.Price,
			}
		},
		Apply: func(ctx context.Context, v pipeline.Valid[deleteVehicleForm]) (pipeline.Success, error) {
			id, err := parseID(v.Form().ID)
			if err != nil {
				return pipeline.Success{}, err
			}
			if err := h.inventory.DeleteItem(ctx, id); err != nil {
				return pipeline.Success{}, err
			}
			return pipeline.Success{
				Notice:   fmt.Sprintf("The %s %s was successfully deleted.", v.Form().Make, v.Form().Model),
				Redirect: "/inv/",
			}, nil
		},
		FailureNotice: func(*deleteVehicleForm) string { return "Sorry, the delete failed." },
	})
}

// decorateVehicle adds the classification select, keeping the submitted choice.
func (h *InventoryHandler) decorateVehicle(ctx context.Context, f *vehicleForm, data *view.Data) error {
	selected, _ := parseID(f.ClassificationID)
	list, err := h.pages.ClassificationList(ctx, selected)
	if err != nil {
		return err
	}
	data.ClassificationList = list
	return nil
}
