package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spurlabs/support-chat/backend/internal/handler/chat"
	middlewarePkg "github.com/spurlabs/support-chat/backend/internal/middleware"
	chatService "github.com/spurlabs/support-chat/backend/internal/service/chat"
	"github.com/spurlabs/support-chat/backend/web"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chat.New(chatSvc)
	r.Route("/chat", chatHandler.RegisterRoutes)

	// Embedded widget page for local use and demos.
	r.Handle("/*", http.FileServer(http.FS(web.Assets())))

	return r
}
