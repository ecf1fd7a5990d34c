package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
	"github.com/vidshelf/vidshelf/pkg/binder"
	"github.com/vidshelf/vidshelf/pkg/config"
	"github.com/vidshelf/vidshelf/pkg/errcodes"
	"github.com/vidshelf/vidshelf/pkg/folders"
	"github.com/vidshelf/vidshelf/pkg/mainfolders"
	"github.com/vidshelf/vidshelf/pkg/mediaprobe"
	"github.com/vidshelf/vidshelf/pkg/notes"
	"github.com/vidshelf/vidshelf/pkg/scanner"
	"github.com/vidshelf/vidshelf/pkg/tags"
	"github.com/vidshelf/vidshelf/pkg/videos"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
	}))

	health.RegisterRoutes(e)

	registerAPIRoutes(e, db)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func registerAPIRoutes(e *echo.Echo, db *bun.DB) {
	scanService := scanner.NewService(db, mediaprobe.New())

	api := e.Group("/api")

	// Folders routes, including the scan entrypoint
	foldersGroup := api.Group("/folders")
	folders.RegisterRoutesWithGroup(foldersGroup, db)

	mainFoldersGroup := api.Group("/mainfolders")
	mainfolders.RegisterRoutesWithGroups(foldersGroup, mainFoldersGroup, db, scanService)

	// Singular routes for free-text search and the on-disk probe
	folders.RegisterSearchRoute(api.Group("/folder"), db)
	folders.RegisterExistsRoute(api.Group("/folder-exists"), db)

	// Videos routes
	videosGroup := api.Group("/videos")
	videos.RegisterRoutesWithGroup(videosGroup, db)
	videos.RegisterSearchRoute(api.Group("/video"), db)

	// Raw file streaming lives outside the /api prefix
	videos.RegisterStreamRoute(e.Group("/videos"), db)

	// Notes routes
	notes.RegisterRoutesWithGroups(videosGroup, api.Group("/notes"), db)

	// Tags routes
	tags.RegisterRoutesWithGroup(api.Group("/tags"), db)
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
