package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/internal/repository"
	"github.com/adness/starburst/pkg/content"
	"github.com/adness/starburst/views"
)

// Pages serves the browse pages.
type Pages struct {
	content *content.Library
	now     func() time.Time
}

// SBIndex is the browse landing page: its content followed by the open
// auctions and approved ads.
func (p *Pages) SBIndex(c *internal.Context) error {
	page, err := p.withContent(c, "sbindex")
	if err != nil {
		return err
	}
	db, err := models(c)
	if err != nil {
		return err
	}
	open, err := db.AuctionsBy(c.Context(), repository.AuctionsOpen, p.now())
	if err != nil {
		return err
	}
	ads, err := db.AdsByStatus(c.Context(), repository.AdApproved)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, views.HomePage(site(c, page.Title), page.HTML, views.Home{Open: open, Ads: ads}))
}

func (p *Pages) Index(c *internal.Context) error        { return p.render(c, "index") }
func (p *Pages) Rules(c *internal.Context) error        { return p.render(c, "rules") }
func (p *Pages) History(c *internal.Context) error      { return p.render(c, "history") }
func (p *Pages) Registration(c *internal.Context) error { return p.render(c, "registration") }
func (p *Pages) Payment(c *internal.Context) error      { return p.render(c, "payment") }

// QR shows the payment reference encoded in a scanned code.
func (p *Pages) QR(c *internal.Context) error {
	return c.Render(http.StatusOK, views.QRPage(site(c, "Payment reference"), c.Param("qrString")))
}

func (p *Pages) Profile(c *internal.Context) error {
	db, err := models(c)
	if err != nil {
		return err
	}
	u, err := db.User(c.Context(), c.Param("userId"))
	if err != nil {
		return lookup("user", err)
	}

	return c.Render(http.StatusOK, views.ProfilePage(site(c, u.Username), views.Profile{
		User:      *u,
		ShowEmail: owns(c, u.ID) && u.Email != "",
		Self:      c.Identity != nil && c.Identity.ID == u.ID,
	}))
}

// AdUpload renders the ad form, prefilled when editing an existing ad.
func (p *Pages) AdUpload(c *internal.Context) error {
	form := views.AdForm{Heading: "Upload an ad", Action: c.Prefix + "/ads"}

	if id := c.Param("adId"); id != "" {
		db, err := models(c)
		if err != nil {
			return err
		}
		ad, err := db.Ad(c.Context(), id)
		if err != nil {
			return lookup("ad", err)
		}
		if !owns(c, ad.UserID) {
			return forbidden()
		}
		form = views.AdForm{Heading: "Edit ad", Action: c.Prefix + "/ads/" + ad.ID, Ad: *ad}
	}

	return c.Render(http.StatusOK, views.AdFormPage(site(c, form.Heading), form))
}

// Admin lists ads awaiting moderation and every auction.
func (p *Pages) Admin(c *internal.Context) error {
	if !isAdmin(c) {
		return forbidden()
	}
	db, err := models(c)
	if err != nil {
		return err
	}
	pending, err := db.AdsByStatus(c.Context(), repository.AdPending)
	if err != nil {
		return err
	}
	auctions, err := db.Auctions(c.Context())
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, views.AdminPage(site(c, "Administration"), views.Admin{
		Now:      p.now(),
		Pending:  pending,
		Auctions: auctions,
	}))
}

// withContent renders the named markdown page.
func (p *Pages) withContent(c *internal.Context, name string) (*content.Page, error) {
	page, err := p.content.Page(c.Context(), name)
	if errors.Is(err, content.ErrPageNotFound) {
		return nil, internal.ErrNotFound("page not found", internal.WithError(err))
	}
	return page, err
}

func (p *Pages) render(c *internal.Context, name string) error {
	page, err := p.withContent(c, name)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.ContentPage(site(c, page.Title), page.HTML))
}
