package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /rest/players", handler.ListPlayers)
	mux.HandleFunc("GET /rest/players/count", handler.CountPlayers)
	mux.HandleFunc("POST /rest/players", handler.CreatePlayer)
	mux.HandleFunc("GET /rest/players/{id}", handler.GetPlayer)
	// Partial update keeps POST on the item path.
	mux.HandleFunc("POST /rest/players/{id}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /rest/players/{id}", handler.DeletePlayer)
}
