package config

import "go.uber.org/fx"

// Module provides the parsed configuration.
var Module = fx.Provide(Load)
