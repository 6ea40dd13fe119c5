package middlewares

import (
	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/pkg/cookie"
)

// Cookies fills Context.Cookies with every request cookie and
// Context.SignedCookies with the verified values of signed ones.
// A signed cookie whose signature does not verify is left out of both maps.
func Cookies(signer *cookie.Signer) internal.Step {
	return internal.Step{
		Name: StepCookies,
		Run: func(c *internal.Context) (internal.Signal, error) {
			seen := map[string]bool{}
			for _, ck := range c.Request().Cookies() {
				// first occurrence wins
				if seen[ck.Name] {
					continue
				}
				seen[ck.Name] = true
				if !cookie.IsSigned(ck.Value) {
					c.Cookies[ck.Name] = ck.Value
					continue
				}
				if v, err := signer.Unsign(ck.Value); err == nil {
					c.SignedCookies[ck.Name] = v
				}
			}
			return internal.Continue, nil
		},
	}
}
