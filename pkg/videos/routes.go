package videos

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers video routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		videoService: NewService(db),
	}

	g.GET("/:id", h.retrieve)
	g.PUT("/:id", h.update)
}

// RegisterSearchRoute registers the free-text video search endpoint. It lives
// at /api/video, outside the /api/videos group.
func RegisterSearchRoute(g *echo.Group, db *bun.DB) {
	h := &handler{
		videoService: NewService(db),
	}

	g.GET("", h.search)
}

// RegisterStreamRoute registers the raw file streaming endpoint at /videos/,
// outside the /api prefix.
func RegisterStreamRoute(g *echo.Group, db *bun.DB) {
	h := &handler{
		videoService: NewService(db),
	}

	g.GET("/", h.stream)
}
