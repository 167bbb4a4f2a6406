package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
)

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	raw, err := c.getRaw(ctx, "/auth/me")
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

// Listings searches the marketplace. Empty query fields are not sent.
func (c *HTTPClient) Listings(ctx context.Context, q models.ListingQuery) ([]models.Listing, error) {
	v := url.Values{}
	setIfNotEmpty(v, "search", q.Search)
	setIfNotEmpty(v, "category", q.Category)
	setIfNotEmpty(v, "sort", q.Sort)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return c.getListings(ctx, "/listings"+encodeQuery(v))
}

func (c *HTTPClient) FeaturedListings(ctx context.Context, limit int) ([]models.Listing, error) {
	path := "/listings/featured"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	return c.getListings(ctx, path)
}

func (c *HTTPClient) ListingsBySeller(ctx context.Context, sellerID models.ID) ([]models.Listing, error) {
	return c.getListings(ctx, "/listings/seller/"+escapeID(sellerID))
}

func (c *HTTPClient) getListings(ctx context.Context, path string) ([]models.Listing, error) {
	raw, err := c.getRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	ls, err := decodeList[models.Listing](raw)
	if err != nil {
		return nil, err
	}
	return c.resolveListings(ls), nil
}

func (c *HTTPClient) Listing(ctx context.Context, id models.ID) (*models.Listing, error) {
	var l models.Listing
	if err := c.doJSON(ctx, http.MethodGet, "/listings/"+escapeID(id), nil, &l); err != nil {
		return nil, err
	}
	c.resolveListing(&l)
	return &l, nil
}

func (c *HTTPClient) CreateListing(ctx context.Context, in models.ListingInput) (*models.Listing, error) {
	var l models.Listing
	if err := c.doJSON(ctx, http.MethodPost, "/listings", in, &l); err != nil {
		return nil, err
	}
	c.resolveListing(&l)
	return &l, nil
}

func (c *HTTPClient) UpdateListing(ctx context.Context, id models.ID, in models.ListingInput) (*models.Listing, error) {
	var l models.Listing
	if err := c.doJSON(ctx, http.MethodPatch, "/listings/"+escapeID(id), in, &l); err != nil {
		return nil, err
	}
	c.resolveListing(&l)
	return &l, nil
}

func (c *HTTPClient) DeleteListing(ctx context.Context, id models.ID) error {
	return c.doJSON(ctx, http.MethodDelete, "/listings/"+escapeID(id), nil, nil)
}

// UploadImages posts files as multipart field "images" and returns the
// stored URLs, resolved against the API origin.
func (c *HTTPClient) UploadImages(ctx context.Context, files []models.ImageFile) ([]string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("failed to create form part: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write form part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}

	req, requestID, err := c.newRequest(ctx, http.MethodPost, "/upload", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	raw, err := c.send(ctx, req, requestID)
	if err != nil {
		return nil, err
	}
	urls, err := decodeUpload(raw)
	if err != nil {
		return nil, err
	}
	for i, u := range urls {
		urls[i] = c.ResolveImageURL(u)
	}
	return urls, nil
}

func (c *HTTPClient) User(ctx context.Context, id models.ID) (*models.User, error) {
	raw, err := c.getRaw(ctx, "/users/"+escapeID(id))
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (c *HTTPClient) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	raw, err := c.getRaw(ctx, "/users/username/"+url.PathEscape(username))
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id models.ID, in models.ProfileUpdate) (*models.User, error) {
	var raw jsonRaw
	if err := c.doJSON(ctx, http.MethodPatch, "/users/"+escapeID(id), in, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, id models.ID, currentPassword, newPassword string) error {
	body := models.PasswordChange{CurrentPassword: currentPassword, NewPassword: newPassword}
	return c.doJSON(ctx, http.MethodPatch, "/users/"+escapeID(id)+"/password", body, nil)
}

func (c *HTTPClient) SellerRatings(ctx context.Context, userID models.ID) ([]models.Rating, error) {
	return c.getRatings(ctx, "/ratings/seller/"+escapeID(userID))
}

func (c *HTTPClient) ProductRatings(ctx context.Context, productID models.ID) ([]models.Rating, error) {
	return c.getRatings(ctx, "/ratings/product/"+escapeID(productID))
}

func (c *HTTPClient) getRatings(ctx context.Context, path string) ([]models.Rating, error) {
	raw, err := c.getRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Rating](raw)
}

func (c *HTTPClient) SellerAverage(ctx context.Context, userID models.ID) (*models.RatingAverage, error) {
	var avg models.RatingAverage
	if err := c.doJSON(ctx, http.MethodGet, "/ratings/average/seller/"+escapeID(userID), nil, &avg); err != nil {
		return nil, err
	}
	return &avg, nil
}

func (c *HTTPClient) CheckRatedSeller(ctx context.Context, fromUserID, toUserID models.ID) (*models.Rating, error) {
	v := url.Values{}
	v.Set("fromUserId", fromUserID.String())
	v.Set("toUserId", toUserID.String())
	return c.checkRated(ctx, "/ratings/check/seller?"+v.Encode())
}

func (c *HTTPClient) CheckRatedProduct(ctx context.Context, fromUserID, productID models.ID) (*models.Rating, error) {
	v := url.Values{}
	v.Set("fromUserId", fromUserID.String())
	v.Set("productId", productID.String())
	return c.checkRated(ctx, "/ratings/check/product?"+v.Encode())
}

func (c *HTTPClient) checkRated(ctx context.Context, path string) (*models.Rating, error) {
	raw, err := c.getRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeCheck(raw)
}

func (c *HTTPClient) CreateRating(ctx context.Context, in models.RatingSubmission) (*models.Rating, error) {
	var r models.Rating
	if err := c.doJSON(ctx, http.MethodPost, "/ratings", in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// jsonRaw captures a body for a second decoding pass.
type jsonRaw []byte

func (r *jsonRaw) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}

func escapeID(id models.ID) string { return url.PathEscape(id.String()) }

func setIfNotEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func encodeQuery(v url.Values) string {
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
