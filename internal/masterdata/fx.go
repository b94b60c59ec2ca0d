package masterdata

import (
	"github.com/smallbiznis/procura/internal/masterdata/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("masterdata",
	fx.Provide(repository.Provide),
)
