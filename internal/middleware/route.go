package middleware

import (
	"context"
	"net/http"
)

type routeKey struct{}

// withRoute garante um slot no contexto para o padrão da rota. O ServeMux
// grava r.Pattern só na cópia da requisição que recebe, então os
// middlewares de fora leem o padrão por aqui.
func withRoute(ctx context.Context) (context.Context, *string) {
	if route, ok := ctx.Value(routeKey{}).(*string); ok {
		return ctx, route
	}
	route := new(string)
	return context.WithValue(ctx, routeKey{}, route), route
}

// Route resolve o padrão do mux antes de despachar a requisição.
func Route(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route, ok := r.Context().Value(routeKey{}).(*string); ok {
			_, *route = mux.Handler(r)
		}
		mux.ServeHTTP(w, r)
	})
}
