package products

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sixgo.GO/api"
	"sixgo.GO/products"
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

func RegisterProductRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/products")

	// GET /api/products – search with the full filter set in the query
	// string. Identical filter sets within the freshness window are served
	// from cache.
	g.GET("", func(c echo.Context) error {
		params := bindFilters(c)
		page, err := deps.Search.Search(c.Request().Context(), params)
		if err != nil {
			if err == products.ErrMainCategoryRequired {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": page})
	})

	// GET /api/products/filter-options – static selector option sets
	g.GET("/filter-options", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"pageSizes":          products.PageSizeOptions,
			"numberOfProgresses": products.NumberOfProgressesOptions,
			"sessionsPerWeek":    products.SessionsPerWeekOptions,
			"defaultPageSize":    products.DefaultPageSize,
		})
	})

	// POST /api/products/notes – create or update a note pair
	g.POST("/notes", func(c echo.Context) error {
		var update products.NoteUpdate
		if err := c.Bind(&update); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if update.ProductID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "productId is required"})
		}
		if update.CSImportantNote == nil && update.CSSpecialPoint == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to save"})
		}
		if err := deps.Notes.Save(c.Request().Context(), update); err != nil {
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"saved": true})
	})

	// DELETE /api/products/:id/notes?variantId=... – clear a note pair
	g.DELETE("/:id/notes", func(c echo.Context) error {
		var variantID *string
		if v := c.QueryParam("variantId"); v != "" {
			variantID = &v
		}
		if err := deps.Notes.Delete(c.Request().Context(), c.Param("id"), variantID); err != nil {
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"deleted": true})
	})
}

// bindFilters reads the filter set off the query string. Absent array
// parameters stay nil so the upstream query omits them entirely.
func bindFilters(c echo.Context) products.FilterParams {
	params := products.DefaultFilters()
	q := c.QueryParams()

	if v, err := strconv.Atoi(c.QueryParam("pageNumber")); err == nil && v > 0 {
		params.PageNumber = v
	}
	if v, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && v > 0 {
		params.PageSize = v
	}
	params.MainCategoryCode = c.QueryParam("mainCategoryCode")
	params.SearchTerm = c.QueryParam("searchTerm")
	params.CategoryCodes = q["categoryCodes"]
	params.LangCodes = q["langCodes"]
	params.LocationCodes = q["locationCodes"]
	params.ProgressMethodCodes = q["progressMethodCodes"]
	params.ProductTypeCodes = q["productTypeCodes"]
	params.NumberOfProgresses = atoiAll(q["numberOfProgresses"])
	params.NumberOfProgressPerWeeks = atoiAll(q["numberOfProgressPerWeeks"])
	return params
}

func atoiAll(in []string) []int {
	if len(in) == 0 {
		return nil
	}
	out := make([]int, 0, len(in))
	for _, s := range in {
		if v, err := strconv.Atoi(s); err == nil {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
