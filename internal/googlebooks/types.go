package googlebooks

// SearchResponse matches the Google Books volumes search payload.
// Items is absent (nil) when nothing matched.
type SearchResponse struct {
	Kind       string     `json:"kind"`
	TotalItems int        `json:"totalItems"`
	Items      []Volume   `json:"items"`
	Error      *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the structured error object Google APIs return.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
	Errors  []struct {
		Message string `json:"message"`
		Domain  string `json:"domain"`
		Reason  string `json:"reason"`
	} `json:"errors"`
}

// Volume is a single search hit.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
	SaleInfo   *SaleInfo  `json:"saleInfo,omitempty"`
}

// VolumeInfo carries the bibliographic fields. Every field may be missing.
type VolumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle,omitempty"`
	Authors             []string             `json:"authors,omitempty"`
	Publisher           string               `json:"publisher,omitempty"`
	PublishedDate       string               `json:"publishedDate,omitempty"`
	Description         string               `json:"description,omitempty"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers,omitempty"`
	PageCount           int                  `json:"pageCount,omitempty"`
	Categories          []string             `json:"categories,omitempty"`
	AverageRating       float64              `json:"averageRating,omitempty"`
	RatingsCount        int                  `json:"ratingsCount,omitempty"`
	ImageLinks          *ImageLinks          `json:"imageLinks,omitempty"`
	Language            string               `json:"language,omitempty"`
	SaleInfo            *SaleInfo            `json:"saleInfo,omitempty"`
}

// IndustryIdentifier is an ISBN_10, ISBN_13 or OTHER identifier.
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// ImageLinks holds cover thumbnail URLs.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}

// SaleInfo holds pricing. The API puts it on the volume; some payloads nest it in volumeInfo.
type SaleInfo struct {
	Country     string `json:"country,omitempty"`
	Saleability string `json:"saleability,omitempty"`
	ListPrice   *Price `json:"listPrice,omitempty"`
}

// Price is an amount in a currency.
type Price struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode,omitempty"`
}
