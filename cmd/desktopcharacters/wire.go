//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import "github.com/google/wire"

func InitializeApp(flags Flags) (*App, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideWorldSpec,
		ProvideCharacterSpec,
		ProvidePlatform,
		ProvideSimulation,
		ProvideGame,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
