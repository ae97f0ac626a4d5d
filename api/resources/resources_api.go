package resources

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sixgo.GO/api"
)

func init() {
	api.RegisterModule(RegisterResourceRoutes)
}

// RegisterResourceRoutes exposes the cached taxonomy. Every read goes
// through the 24h resource cache; only /refresh forces an upstream fetch.
func RegisterResourceRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/resources")

	// GET /api/resources/main-categories
	g.GET("/main-categories", func(c echo.Context) error {
		cats, err := deps.Resources.MainCategories(c.Request().Context())
		if err != nil {
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": cats})
	})

	// GET /api/resources/main-categories/:code/sub-categories
	g.GET("/main-categories/:code/sub-categories", func(c echo.Context) error {
		subs, err := deps.Resources.SubCategories(c.Request().Context(), c.Param("code"))
		if err != nil {
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": subs})
	})

	// GET /api/resources/categories – the full flattened tree
	g.GET("/categories", func(c echo.Context) error {
		cats, err := deps.Resources.FlatCategories(c.Request().Context())
		if err != nil {
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": cats})
	})

	// GET /api/resources/languages
	g.GET("/languages", func(c echo.Context) error {
		langs, err := deps.Resources.Languages(c.Request().Context())
		if err != nil {
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": langs})
	})

	// GET /api/resources/locations – cities and districts of the home country
	g.GET("/locations", func(c echo.Context) error {
		locs, err := deps.Resources.CountryLocations(c.Request().Context())
		if err != nil {
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": locs})
	})

	// GET /api/resources/product-types?mainCategoryCode=...
	g.GET("/product-types", func(c echo.Context) error {
		code := c.QueryParam("mainCategoryCode")
		if code == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "mainCategoryCode is required"})
		}
		types, err := deps.Resources.ProductTypes(c.Request().Context(), code)
		if err != nil {
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": types})
	})

	// GET /api/resources/process-methods?mainCategoryCode=...
	g.GET("/process-methods", func(c echo.Context) error {
		code := c.QueryParam("mainCategoryCode")
		if code == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "mainCategoryCode is required"})
		}
		methods, err := deps.Resources.ProcessMethods(c.Request().Context(), code)
		if err != nil {
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": methods})
	})

	// POST /api/resources/refresh – drop the cached envelope and refetch
	g.POST("/refresh", func(c echo.Context) error {
		data, err := deps.Resources.Refresh(c.Request().Context())
		if err != nil {
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"refreshed":  true,
			"categories": len(data.Categories),
			"languages":  len(data.Languages),
		})
	})
}
