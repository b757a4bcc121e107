package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staynest/staynest-backend/internal/handlers"
)

// Deps is everything the route table needs wired in.
type Deps struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Property *handlers.PropertyHandler
	Upload   *handlers.UploadHandler
	AuthGate func(http.Handler) http.Handler
}

func Setup(r *chi.Mux, d Deps) {
	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Post("/user/SignUp", d.Auth.SignUp)
		r.Post("/user/SignIn", d.Auth.SignIn)
		r.Post("/user/refresh-token", d.Auth.RefreshToken)

		// Public property reads. Two distinct listing contracts:
		// get-property paginates/sorts, search-property filters.
		r.Get("/property/get-property", d.Property.List)
		r.Get("/property/search-property", d.Property.Search)
		r.Get("/property/get-property/{id}", d.Property.GetByID)

		// Routes behind the auth gate
		r.Group(func(r chi.Router) {
			r.Use(d.AuthGate)

			r.Get("/user/get-user-fav", d.User.GetFavourites)
			r.Patch("/user/addToFav", d.User.AddToFavourites)
			r.Patch("/user/removeFromFav", d.User.RemoveFromFavourites)
			r.Post("/user/booking", d.User.BookProperty)
			r.Get("/user/get-booked-property", d.User.GetBookedProperties)

			r.Post("/property/create-property", d.Property.Create)
			r.Patch("/property/update-property/{id}", d.Property.Update)
			r.Delete("/property/delete-property/{id}", d.Property.Delete)

			r.Post("/upload", d.Upload.Upload)
		})
	})
}
