//go:build wireinject
// +build wireinject

package storefront

import (
	"github.com/google/wire"
	"github.com/gorilla/mux"
)

// InitializeRouter builds the storefront router with all dependencies
func InitializeRouter(deps *Dependencies) (*mux.Router, error) {
	wire.Build(
		AllHandlersSet,
		NewRouter,
	)
	return nil, nil
}
