package handler

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// Pages builds the data bag shared by every rendered page.
type Pages struct {
	inventory ports.InventoryService
	log       zerolog.Logger
}

func NewPages(inventory ports.InventoryService, log zerolog.Logger) *Pages {
	return &Pages{inventory: inventory, log: log}
}

// Nav renders the navigation from the current classifications.
func (p *Pages) Nav(ctx context.Context) (template.HTML, error) {
	classes, err := p.inventory.Classifications(ctx)
	if err != nil {
		return "", err
	}
	return view.BuildNav(classes), nil
}

// Data starts the bag of a page: title, navigation, pending notice and the
// caller. A navigation failure is logged and the page renders without it.
func (p *Pages) Data(c echo.Context, title string) view.Data {
	nav, err := p.Nav(c.Request().Context())
	if err != nil {
		p.log.Warn().Err(err).Str("path", c.Path()).Msg("navigation unavailable")
	}
	return view.Data{
		Title:    title,
		Nav:      nav,
		Notice:   view.NoticeFrom(c),
		Identity: middleware.IdentityFrom(c),
	}
}

// ClassificationList renders the classification select with selected preselected.
func (p *Pages) ClassificationList(ctx context.Context, selected int64) (template.HTML, error) {
	classes, err := p.inventory.Classifications(ctx)
	if err != nil {
		return "", err
	}
	return view.ClassificationOptions(classes, selected), nil
}

// pathID parses a numeric path parameter. Anything else is a 404: the
// resource cannot exist.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Sorry, we appear to have lost that page.")
	}
	return id, nil
}

// lookupError turns a missing record into a 404 and passes everything else
// to the HTTP error handler.
func lookupError(err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAccountNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Sorry, we appear to have lost that page.")
	}
	return err
}

// authorizeAccount checks a submission that names an account id. The owner
// and elevated roles pass.
func authorizeAccount(id domain.Identity, accountID string) error {
	target, err := parseID(strings.TrimSpace(accountID))
	if err != nil || !id.CanManageAccount(target) {
		return domain.ErrForbidden
	}
	return nil
}
