package middlewares

import (
	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/internal/repository"
)

// Loader attaches the data models to every request.
func Loader(models repository.Models) internal.Step {
	return internal.Step{
		Name: StepLoader,
		Run: func(c *internal.Context) (internal.Signal, error) {
			c.Models = models
			return internal.Continue, nil
		},
	}
}
