package handlers

import (
	"net/http"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/internal/repository"
	"github.com/adness/starburst/pkg/content"
	"github.com/adness/starburst/views"
)

// Ads serves the classifieds pages.
type Ads struct{}

// Show renders an ad. Ads that are not approved are only visible to their
// owner and admins.
func (Ads) Show(c *internal.Context) error {
	db, err := models(c)
	if err != nil {
		return err
	}
	ad, err := db.Ad(c.Context(), c.Param("adId"))
	if err != nil {
		return lookup("ad", err)
	}
	if ad.Status != repository.AdApproved && !owns(c, ad.UserID) {
		return internal.ErrNotFound("ad not found")
	}

	body, err := content.Markdown(ad.Body)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, views.AdPage(site(c, ad.Title), views.AdView{Ad: *ad, Body: body}))
}

func (Ads) Approve(*internal.Context) error    { return readOnly("ads") }
func (Ads) Reject(*internal.Context) error     { return readOnly("ads") }
func (Ads) PostDelete(*internal.Context) error { return readOnly("ads") }
func (Ads) Update(*internal.Context) error     { return readOnly("ads") }
func (Ads) Create(*internal.Context) error     { return readOnly("ads") }
func (Ads) Delete(*internal.Context) error     { return readOnly("ads") }
