package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/efoodhub/backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	CatalogHandler *CatalogHTTP
	ReviewHandler  *ReviewHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)

	e.GET("/foods", d.CatalogHandler.ListFoods)
	e.GET("/foods/search", d.CatalogHandler.SearchFoods)
	e.GET("/restaurants/:id/foods", d.CatalogHandler.ListRestaurantFoods)

	mw := authmw.New(d.JWTSecret)

	foods := e.Group("/foods", mw.RequireAuth)
	foods.POST("", d.CatalogHandler.CreateFood)

	addresses := e.Group("/addresses", mw.RequireAuth)
	addresses.GET("", d.CatalogHandler.ListMyAddresses)
	addresses.POST("", d.CatalogHandler.CreateAddress)

	cart := e.Group("/cart", mw.RequireAuth)
	cart.GET("", d.CartHandler.GetMyCart)
	cart.POST("/items", d.CartHandler.AddToCart)
	cart.PATCH("/items", d.CartHandler.UpdateSubCartItem)
	cart.POST("/delete-sub-carts", d.CartHandler.DeleteSubCarts)

	orders := e.Group("/orders", mw.RequireAuth)
	orders.GET("", d.OrderHandler.ListMyOrders)
	orders.POST("", d.OrderHandler.PlaceOrder)
	orders.PATCH("/:id/status", d.OrderHandler.UpdateStatus)

	reviews := e.Group("/reviews", mw.RequireAuth)
	reviews.POST("", d.ReviewHandler.CreateReview)
}
