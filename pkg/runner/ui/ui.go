// Package ui opens the interactive dashboard.
package ui

import (
	"context"
	"errors"

	"tableflip.dev/bedtime/pkg/app"
	"tableflip.dev/bedtime/pkg/tui/dashboard"
)

type UI struct {
	Service *app.Service
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("ui: no service")
	}
	return dashboard.Run(ctx, u.Service)
}
