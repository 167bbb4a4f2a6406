package models

// Listing is an item offered for sale. The seller is referenced by SellerID
// or embedded as a snapshot taken when the listing was created.
type Listing struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	SellerID    ID       `json:"sellerId,omitempty"`
	Seller      *User    `json:"seller,omitempty"`
}

// SellerRef returns the seller id, preferring the explicit sellerId field.
func (l *Listing) SellerRef() ID {
	if l.SellerID != "" {
		return l.SellerID
	}
	if l.Seller != nil {
		return l.Seller.ID
	}
	return ""
}

// ListingInput is the body of POST /listings and PATCH /listings/:id.
type ListingInput struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// ListingQuery holds the /listings search parameters. Zero values are omitted.
type ListingQuery struct {
	Search   string
	Category string
	Sort     string
	Limit    int
	Offset   int
}

// Sort orders understood by the marketplace.
const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// Categories is the fixed category list offered when creating a listing.
var Categories = []string{"Electronics", "Fashion", "Furniture", "Sports", "Entertainment", "Books"}

// ImageFile is one image to upload.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}
