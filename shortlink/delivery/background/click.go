package background

import (
	"context"

	"github.com/superj80820/shortlink/domain"
)

// RunClickAccountant starts the click-event consumer and returns a stop
// function for shutdown.
func RunClickAccountant(ctx context.Context, clickAccountantUseCase domain.ClickAccountantUseCase) func() {
	clickAccountantUseCase.Process(ctx)
	return func() {
		clickAccountantUseCase.Stop(ctx)
	}
}
