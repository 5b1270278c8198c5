package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/streampair/bracket-system/handlers"
	"github.com/streampair/bracket-system/middleware"
)

// SetupRoutes wires every handler into the router. Reads are public; writes
// require a valid token. Matching endpoints need authentication because the
// default query name comes from the token's display_name claim.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	bracketHandler *handlers.BracketHandler,
	adHocHandler *handlers.AdHocBracketHandler,
	matchingHandler *handlers.MatchingHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/fill-in-brackets", func(r chi.Router) {
		r.Get("/", bracketHandler.ListHandler)
		r.Get("/template.csv", bracketHandler.TemplateCSVHandler)
		r.Get("/{bracketID}", bracketHandler.GetByIDHandler)
		r.Get("/{bracketID}/csv", bracketHandler.ExportCSVHandler)

		// Creation stays open to guests: a token, when sent, attributes the
		// bracket to its creator, and without one the bracket is stored
		// unattributed.
		r.With(middleware.AuthenticateOptional(jwtSecret)).Post("/", bracketHandler.CreateHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Put("/{bracketID}", bracketHandler.UpdateDetailsHandler)
			r.Post("/{bracketID}/slots", bracketHandler.AddSlotHandler)
			r.Put("/{bracketID}/slots/{slotIndex}", bracketHandler.UpdateSlotHandler)
			r.Delete("/{bracketID}/slots/{slotIndex}", bracketHandler.RemoveSlotHandler)
			r.Put("/{bracketID}/slots/{slotIndex}/status", bracketHandler.SetSlotStatusHandler)
			r.Put("/{bracketID}/slots/{slotIndex}/confirmation", bracketHandler.SetConfirmationHandler)
			r.Post("/{bracketID}/csv", bracketHandler.ImportCSVHandler)
			r.Post("/{bracketID}/csv/share", bracketHandler.ShareCSVHandler)
		})
	})

	router.Route("/brackets", func(r chi.Router) {
		r.Get("/", adHocHandler.ListHandler)
		r.Get("/{bracketID}", adHocHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/", adHocHandler.CreateHandler)
			r.Post("/{bracketID}/participants", adHocHandler.AddParticipantHandler)
		})
	})

	router.Route("/matching", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/brackets", matchingHandler.BracketsCreatedByHandler)
		r.Get("/slots", matchingHandler.SlotsInvolvingHandler)
		r.Get("/history", matchingHandler.HistoryHandler)
	})

	router.Get("/ws/fill-in-brackets/{bracketID}", webSocketHandler.ServeFillInBracket)
}
