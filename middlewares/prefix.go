package middlewares

import "github.com/adness/starburst/internal"

// BrowsePrefix sets Context.Prefix to prefix on every request.
func BrowsePrefix(prefix string) internal.Step {
	return internal.Step{
		Name: StepBrowsePrefix,
		Run: func(c *internal.Context) (internal.Signal, error) {
			c.Prefix = prefix
			return internal.Continue, nil
		},
	}
}
