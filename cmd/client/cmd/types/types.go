// Package types хранит ключи контекста, общие для команд клиента.
package types

import (
	"context"
	"errors"

	"querytrack/internal/app/client"
)

type contextKey string

const ClientAppKey contextKey = "app"

var errNoApp = errors.New("приложение не инициализировано")

func WithApp(ctx context.Context, app *client.App) context.Context {
	return context.WithValue(ctx, ClientAppKey, app)
}

// App достает клиент, положенный в контекст корневой командой.
func App(ctx context.Context) (*client.App, error) {
	app, ok := ctx.Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, errNoApp
	}
	return app, nil
}
