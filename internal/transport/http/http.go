package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gebeta/delivery/internal/dal/telebirr"
	"github.com/gebeta/delivery/internal/service/models/cartline"
	"github.com/gebeta/delivery/internal/service/models/category"
	"github.com/gebeta/delivery/internal/service/models/favorite"
	"github.com/gebeta/delivery/internal/service/models/menuitem"
	"github.com/gebeta/delivery/internal/service/models/notification"
	"github.com/gebeta/delivery/internal/service/models/order"
	"github.com/gebeta/delivery/internal/service/models/promo"
	"github.com/gebeta/delivery/internal/service/models/rating"
	"github.com/gebeta/delivery/internal/service/models/restaurant"
	"github.com/gebeta/delivery/internal/service/models/user"
	"github.com/gebeta/delivery/pkg/http/middleware/trace"
	"github.com/gebeta/delivery/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type cartService interface {
	Add(ctx context.Context, userID string, menuItemID int64, quantity int) (cartline.CartLine, error)
	Increment(ctx context.Context, userID string, id int64) (cartline.CartLine, error)
	Decrement(ctx context.Context, userID string, id int64) (cartline.CartLine, error)
	SetQuantity(ctx context.Context, userID string, id int64, quantity int) (cartline.CartLine, error)
	Remove(ctx context.Context, userID string, id int64) error
	Clear(ctx context.Context, userID string) error
	List(ctx context.Context, userID string) ([]cartline.CartLine, error)
}

type orderService interface {
	PlaceOrder(ctx context.Context, userID string, restaurantID int64, deliveryAddress, notes string) (order.Order, error)
	PlaceAllOrders(ctx context.Context, userID string, deliveryAddress, notes string) ([]order.Order, error)
	UpdateOrder(ctx context.Context, id int64, upd order.Update) (order.Order, error)
	GetOrder(ctx context.Context, id int64) (order.Order, error)
	GetOrders(ctx context.Context, filter *order.Query) ([]order.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type catalogService interface {
	ListRestaurants(ctx context.Context) ([]restaurant.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (restaurant.Restaurant, error)
	CreateRestaurant(ctx context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id int64, upd restaurant.Update) (restaurant.Restaurant, error)
	ListMenu(ctx context.Context, restaurantID int64) ([]menuitem.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (menuitem.MenuItem, error)
	CreateMenuItem(ctx context.Context, m menuitem.MenuItem) (menuitem.MenuItem, error)
	UpdateMenuItemPrice(ctx context.Context, id int64, price int64) error
	SetMenuItemAvailability(ctx context.Context, id int64, available bool) error
	ListCategories(ctx context.Context) ([]category.Category, error)
	ListActivePromos(ctx context.Context) ([]promo.Promo, error)
	CreatePromo(ctx context.Context, p promo.Promo) (promo.Promo, error)
}

type favoriteService interface {
	Add(ctx context.Context, userID string, menuItemID int64) (favorite.Favorite, error)
	List(ctx context.Context, userID string) ([]favorite.Favorite, error)
	Remove(ctx context.Context, userID string, id int64) error
}

type notificationService interface {
	Create(ctx context.Context, userID, message string) (notification.Notification, error)
	List(ctx context.Context, userID string) ([]notification.Notification, error)
	MarkRead(ctx context.Context, userID string, id int64) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type ratingService interface {
	RateRestaurant(ctx context.Context, r rating.RestaurantRating) (rating.RestaurantRating, error)
	ListRestaurantRatings(ctx context.Context, restaurantID int64) ([]rating.RestaurantRating, error)
	RateMenuItem(ctx context.Context, r rating.MenuRating) (rating.MenuRating, error)
	ListMenuRatings(ctx context.Context, menuItemID int64) ([]rating.MenuRating, error)
}

type userService interface {
	Get(ctx context.Context, id string) (user.User, error)
	RegisterPushToken(ctx context.Context, id string, token string) error
	UpdateLocation(ctx context.Context, id string, latitude, longitude, address string) error
}

type paymentService interface {
	VerifyTelebirr(ctx context.Context, reference string) (telebirr.VerificationResult, error)
}

type HTTPTransport struct {
	server *http.Server
	router *chi.Mux

	cartService         cartService
	orderService        orderService
	catalogService      catalogService
	favoriteService     favoriteService
	notificationService notificationService
	ratingService       ratingService
	userService         userService
	paymentService      paymentService
}

func NewHTTPTransport(
	cartService cartService,
	orderService orderService,
	catalogService catalogService,
	favoriteService favoriteService,
	notificationService notificationService,
	ratingService ratingService,
	userService userService,
	paymentService paymentService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:              server,
		router:              router,
		cartService:         cartService,
		orderService:        orderService,
		catalogService:      catalogService,
		favoriteService:     favoriteService,
		notificationService: notificationService,
		ratingService:       ratingService,
		userService:         userService,
		paymentService:      paymentService,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown stops accepting new requests and drains in-flight ones.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/", h.getUser)
			r.Patch("/location", h.updateLocation)
			r.Put("/push-token", h.registerPushToken)

			r.Route("/cart-items", func(r chi.Router) {
				r.Get("/", h.listCart)
				r.Post("/", h.addToCart)
				r.Delete("/", h.clearCart)
				r.Patch("/{id}", h.setCartQuantity)
				r.Post("/{id}/increment", h.incrementCartLine)
				r.Post("/{id}/decrement", h.decrementCartLine)
				r.Delete("/{id}", h.removeCartLine)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.listUserOrders)
				r.Post("/", h.placeOrder)
				r.Post("/checkout-all", h.placeAllOrders)
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", h.listFavorites)
				r.Post("/", h.addFavorite)
				r.Delete("/{id}", h.removeFavorite)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.listNotifications)
				r.Post("/", h.createNotification)
				r.Get("/unread-count", h.countUnreadNotifications)
				r.Patch("/{id}/read", h.markNotificationRead)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/{id}", h.getOrder)
			r.Patch("/{id}", h.updateOrder)
			r.Delete("/{id}", h.deleteOrder)
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", h.listRestaurants)
			r.Post("/", h.createRestaurant)
			r.Get("/{id}", h.getRestaurant)
			r.Patch("/{id}", h.updateRestaurant)
			r.Get("/{id}/menu", h.listMenu)
			r.Post("/{id}/menu", h.createMenuItem)
			r.Get("/{id}/orders", h.listRestaurantOrders)
			r.Get("/{id}/ratings", h.listRestaurantRatings)
			r.Post("/{id}/ratings", h.rateRestaurant)
		})

		r.Route("/menu-items/{id}", func(r chi.Router) {
			r.Get("/", h.getMenuItem)
			r.Patch("/price", h.updateMenuItemPrice)
			r.Patch("/availability", h.setMenuItemAvailability)
			r.Get("/ratings", h.listMenuRatings)
			r.Post("/ratings", h.rateMenuItem)
		})

		r.Get("/delivery-people/{id}/orders", h.listDeliveryPersonOrders)
		r.Get("/categories", h.listCategories)

		r.Route("/promos", func(r chi.Router) {
			r.Get("/", h.listActivePromos)
			r.Post("/", h.createPromo)
		})

		r.Post("/payments/verify-telebirr", h.verifyTelebirrPayment)
	})
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
