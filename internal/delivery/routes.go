package delivery

import (
	"github.com/go-chi/chi/v5"
	"github.com/uxmedia/demoportal/internal/ports"
)

func RegisterRoutes(r chi.Router, hAuth *AuthHandler, hSubmit *SubmitHandler, hAdmin *AdminHandler, auth ports.AuthService) {

	// public
	r.Post("/api/login", hAuth.Login)
	r.Post("/api/submissions", hSubmit.Submit)
	r.Get("/api/portal", hSubmit.Portal)
	r.Get("/api/preview", hSubmit.Preview)

	// admin
	r.Route("/api/admin", func(ar chi.Router) {
		ar.Use(AuthMiddleware(auth))

		ar.Get("/state", hAdmin.State)
		ar.Post("/portal", hAdmin.SetPortal)
		ar.Post("/pick-next", hAdmin.PickNext)
		ar.Post("/accept", hAdmin.Accept)
		ar.Post("/deny", hAdmin.Deny)
		ar.Post("/submissions/{id}/weight", hAdmin.AdjustWeight)
		ar.Post("/submissions/{id}/requeue", hAdmin.Requeue)
		ar.Post("/sessions", hAdmin.NewSession)
	})
}
