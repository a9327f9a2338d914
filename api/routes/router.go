package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bookhaven/bookhaven-backend/api/controllers"
	"github.com/bookhaven/bookhaven-backend/api/middleware"
	articlesvc "github.com/bookhaven/bookhaven-backend/internal/articles"
	authsvc "github.com/bookhaven/bookhaven-backend/internal/auth"
	cartsvc "github.com/bookhaven/bookhaven-backend/internal/cart"
	catalogsvc "github.com/bookhaven/bookhaven-backend/internal/catalog"
	checkoutsvc "github.com/bookhaven/bookhaven-backend/internal/checkout"
	contactsvc "github.com/bookhaven/bookhaven-backend/internal/contact"
	contentsvc "github.com/bookhaven/bookhaven-backend/internal/content"
	inventorysvc "github.com/bookhaven/bookhaven-backend/internal/inventory"
	ordersvc "github.com/bookhaven/bookhaven-backend/internal/orders"
	reportingsvc "github.com/bookhaven/bookhaven-backend/internal/reporting"
	reviewsvc "github.com/bookhaven/bookhaven-backend/internal/reviews"
	"github.com/bookhaven/bookhaven-backend/pkg/config"
	"github.com/bookhaven/bookhaven-backend/pkg/db"
	"github.com/bookhaven/bookhaven-backend/pkg/logger"
	"github.com/bookhaven/bookhaven-backend/pkg/metrics"
	"github.com/bookhaven/bookhaven-backend/pkg/redis"
)

// Services bundles the wired service layer handed to the router.
type Services struct {
	Auth      authsvc.Service
	Catalog   catalogsvc.Service
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
	Orders    ordersvc.Service
	Content   contentsvc.Service
	Articles  articlesvc.Service
	Contact   contactsvc.Service
	Reviews   reviewsvc.Service
	Inventory inventorysvc.Service
	Reporting reportingsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg, httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisP, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", controllers.ListBooks(svcs.Catalog, logg))
			r.Get("/{bookID}", controllers.GetBook(svcs.Catalog, logg))
			r.Get("/{bookID}/reviews", controllers.ListReviews(svcs.Reviews, logg))
			r.Post("/{bookID}/reviews", controllers.CreateReview(svcs.Reviews, logg))
		})

		r.Get("/faqs", controllers.ListFAQs(svcs.Content, logg))
		r.Get("/messages", controllers.ListAnnouncements(svcs.Content, logg))

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", controllers.ListArticles(svcs.Articles, logg))
			r.Get("/{articleID}", controllers.GetArticle(svcs.Articles, logg))
		})

		r.Post("/contact", controllers.SubmitContact(svcs.Contact, logg))
		r.Post("/auth/login", controllers.Login(svcs.Auth, logg))

		// Shopper state is keyed by the session header.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(svcs.Cart, logg))
				r.Post("/items", controllers.AddToCart(svcs.Cart, logg))
				r.Delete("/items/{bookID}", controllers.RemoveFromCart(svcs.Cart, logg))
				r.Delete("/items/{bookID}/all", controllers.RemoveItemCompletely(svcs.Cart, logg))
				r.Post("/items/{bookID}/toggle", controllers.ToggleSelectItem(svcs.Cart, logg))
				r.Post("/select-all", controllers.ToggleSelectAll(svcs.Cart, logg))
				r.Delete("/selected", controllers.ClearSelectedItems(svcs.Cart, logg))
				r.Delete("/", controllers.ClearCart(svcs.Cart, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/summary", controllers.GetCheckoutSummary(svcs.Checkout, logg))
				r.Post("/", controllers.SubmitCheckout(svcs.Checkout, logg))
			})

			r.Get("/orders", controllers.ListOrders(svcs.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Route("/books", func(r chi.Router) {
			r.Post("/", controllers.CreateBook(svcs.Catalog, logg))
			r.Patch("/{bookID}", controllers.UpdateBook(svcs.Catalog, logg))
			r.Delete("/{bookID}", controllers.DeleteBook(svcs.Catalog, logg))
			r.Get("/{bookID}/reviews", controllers.AdminListReviews(svcs.Reviews, logg))
			r.Patch("/{bookID}/stock", controllers.SetStock(svcs.Inventory, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(svcs.Orders, logg))
			r.Patch("/{orderID}/status", controllers.UpdateOrderStatus(svcs.Orders, logg))
		})

		r.Route("/faqs", func(r chi.Router) {
			r.Post("/", controllers.CreateFAQ(svcs.Content, logg))
			r.Put("/{faqID}", controllers.UpdateFAQ(svcs.Content, logg))
			r.Delete("/{faqID}", controllers.DeleteFAQ(svcs.Content, logg))
		})

		r.Route("/messages", func(r chi.Router) {
			r.Post("/", controllers.CreateAnnouncement(svcs.Content, logg))
			r.Put("/{announcementID}", controllers.UpdateAnnouncement(svcs.Content, logg))
			r.Delete("/{announcementID}", controllers.DeleteAnnouncement(svcs.Content, logg))
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", controllers.AdminListArticles(svcs.Articles, logg))
			r.Post("/", controllers.CreateArticle(svcs.Articles, logg))
			r.Put("/{articleID}", controllers.UpdateArticle(svcs.Articles, logg))
			r.Delete("/{articleID}", controllers.DeleteArticle(svcs.Articles, logg))
			r.Post("/{articleID}/publish", controllers.PublishArticle(svcs.Articles, logg))
			r.Post("/{articleID}/unpublish", controllers.UnpublishArticle(svcs.Articles, logg))
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", controllers.ListContacts(svcs.Contact, logg))
			r.Get("/{contactID}", controllers.GetContact(svcs.Contact, logg))
			r.Post("/{contactID}/reply", controllers.ReplyContact(svcs.Contact, logg))
			r.Post("/{contactID}/close", controllers.CloseContact(svcs.Contact, logg))
			r.Delete("/{contactID}", controllers.DeleteContact(svcs.Contact, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Delete("/{reviewID}", controllers.DeleteReview(svcs.Reviews, logg))
			r.Post("/{reviewID}/restore", controllers.RestoreReview(svcs.Reviews, logg))
		})

		r.Get("/inventory/low-stock", controllers.ListLowStock(svcs.Inventory, logg))

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", controllers.SalesSummary(svcs.Reporting, logg))
			r.Get("/revenue", controllers.MonthlyRevenue(svcs.Reporting, logg))
			r.Get("/top-sellers", controllers.TopSellingBooks(svcs.Reporting, logg))
		})
	})

	return r
}
