package client

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
)

// ResolveImageURL rewrites image URLs the backend produced for itself so
// they point at the API origin. A localhost URL keeps only its path, a
// root-relative path is prefixed with the origin. Other URLs, and every URL
// when baseURL has no origin, are returned unchanged.
func ResolveImageURL(baseURL, imageURL string) string {
	if imageURL == "" || baseURL == "" {
		return imageURL
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return imageURL
	}
	origin := base.Scheme + "://" + base.Host

	switch {
	case strings.HasPrefix(imageURL, "http://localhost"), strings.HasPrefix(imageURL, "https://localhost"):
		u, err := url.Parse(imageURL)
		if err != nil {
			return imageURL
		}
		return origin + u.Path
	case strings.HasPrefix(imageURL, "/") && !strings.HasPrefix(imageURL, "//"):
		return origin + imageURL
	}
	return imageURL
}

// ResolveImageURL resolves against the client's base URL.
func (c *HTTPClient) ResolveImageURL(imageURL string) string {
	return ResolveImageURL(c.baseURL, imageURL)
}

func (c *HTTPClient) resolveListing(l *models.Listing) {
	for i, img := range l.Images {
		l.Images[i] = c.ResolveImageURL(img)
	}
}

func (c *HTTPClient) resolveListings(ls []models.Listing) []models.Listing {
	for i := range ls {
		c.resolveListing(&ls[i])
	}
	return ls
}
