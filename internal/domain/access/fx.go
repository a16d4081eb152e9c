// Package access contains the access gate module
package access

import (
	"go.uber.org/fx"

	"github.com/Conte777/GateFlow/internal/domain/access/deps"
	"github.com/Conte777/GateFlow/internal/domain/access/usecase/business"
	channelBusiness "github.com/Conte777/GateFlow/internal/domain/channel/usecase/business"
)

// Module provides access gate components for fx dependency injection
var Module = fx.Module("access",
	fx.Provide(
		func(r *channelBusiness.Registry) deps.ChannelLister { return r },
	),
	fx.Provide(business.NewGate),
)
