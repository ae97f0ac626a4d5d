package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sixgo.GO/api"
	"sixgo.GO/session"
)

func init() {
	api.RegisterModule(RegisterSessionRoutes)
}

func RegisterSessionRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/session")

	// POST /api/session/login – public (auth skipper), proxies the identity
	// API and persists the returned session.
	g.POST("/login", func(c echo.Context) error {
		var req session.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if req.Email == "" || req.Password == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
		}
		stored, err := deps.Session.Login(c.Request().Context(), req)
		if err != nil {
			return api.RenderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"userName":  stored.UserName,
			"userRoles": stored.UserRoles,
		})
	})

	// POST /api/session/logout – local session is dropped even when the
	// upstream call fails.
	g.POST("/logout", func(c echo.Context) error {
		deps.Session.Logout(c.Request().Context())
		return c.JSON(http.StatusOK, echo.Map{"loggedOut": true})
	})

	// GET /api/session – who is signed in
	g.GET("", func(c echo.Context) error {
		stored := deps.Session.Current()
		if stored == nil {
			return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"authenticated": true,
			"userName":      stored.UserName,
			"userRoles":     stored.UserRoles,
		})
	})
}
