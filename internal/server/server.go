package server

import (
	"agrimarket/internal/config"
	"agrimarket/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Newはechoインスタンスを組み立てる
func New(cfg config.Config, authH *handler.AuthHandler, orderH *handler.OrderHandler, catalogH *handler.CatalogHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	authH.RegisterRoutes(e)
	orderH.RegisterRoutes(e, cfg)
	catalogH.RegisterRoutes(e, cfg)

	return e
}

func Start(addr string, cfg config.Config, authH *handler.AuthHandler, orderH *handler.OrderHandler, catalogH *handler.CatalogHandler) error {
	e := New(cfg, authH, orderH, catalogH)
	return e.Start(addr)
}
