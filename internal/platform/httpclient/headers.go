package httpclient

import (
	"context"
	"strings"
)

type headersKey struct{}

// ContextWithHeaders adjunta headers a todos los requests hechos con ctx.
// Se combina con los que ya traiga ctx; Call.Headers tiene prioridad sobre ambos.
// El cliente no guarda ni renueva credenciales: quien llama decide qué enviar.
func ContextWithHeaders(ctx context.Context, h map[string]string) context.Context {
	merged := make(map[string]string, len(h))
	for k, v := range headersFrom(ctx) {
		merged[k] = v
	}
	for k, v := range h {
		merged[k] = v
	}
	return context.WithValue(ctx, headersKey{}, merged)
}

func headersFrom(ctx context.Context) map[string]string {
	h, _ := ctx.Value(headersKey{}).(map[string]string)
	return h
}

// BearerAuth arma el header Authorization para un token ya obtenido.
func BearerAuth(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + strings.TrimSpace(token)}
}
