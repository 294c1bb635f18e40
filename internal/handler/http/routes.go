package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/v1", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/users/register", h.register)
			r.Post("/users/login", h.login)
			r.Get("/users/{id}/image", h.getUserImage)

			r.Get("/auctions", h.listAuctions)
			r.Get("/auctions/categories", h.getCategories)
			r.Get("/auctions/{id}", h.getAuction)
			r.Get("/auctions/{id}/bids", h.listBids)
			r.Get("/auctions/{id}/image", h.getAuctionImage)
		})

		// routes where authorization changes the response but is not
		// required
		r.Group(func(r chi.Router) {
			r.Use(h.optionalAuth)
			r.Get("/users/{id}", h.getUser)
		})

		// routes requiring authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/users/logout", h.logout)
			r.Patch("/users/{id}", h.updateUser)
			r.Put("/users/{id}/image", h.setUserImage)
			r.Delete("/users/{id}/image", h.deleteUserImage)

			r.Post("/auctions", h.createAuction)
			r.Patch("/auctions/{id}", h.updateAuction)
			r.Delete("/auctions/{id}", h.deleteAuction)
			r.Post("/auctions/{id}/bids", h.placeBid)
			r.Put("/auctions/{id}/image", h.setAuctionImage)
			r.Delete("/auctions/{id}/image", h.deleteAuctionImage)
		})
	})

	return router
}
