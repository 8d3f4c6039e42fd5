// internal/content/article/model.go
//
// Row and aggregate types for the article screens.
//
// Context
// -------
// The listing query LEFT JOINs articles against their sections and
// products, so it returns one flat row per (article × child) combination,
// with the article's scalar columns replicated on every row.  `Row` mirrors
// that shape, child columns nullable.  `Article` is the nested in-memory
// form the dashboard renders: scalars plus ordered `sections` and
// `products` slices.  Aggregated articles are rebuilt on every list reload
// and never persisted in nested form.
package article

import "time"

// Row is one flat result row from the listing join.  Child columns are
// pointers because an article without sections or products still yields
// one row, with those columns NULL.
type Row struct {
	ID         int64     `db:"id"`
	Title      string    `db:"title"`
	Slug       string    `db:"slug"`
	TypeID     *int64    `db:"type_id"`
	CategoryID *int64    `db:"category_id"`
	AuthorID   *int64    `db:"author_id"`
	Status     string    `db:"status"`
	Language   string    `db:"language"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`

	// Lookup joins.
	TypeName     *string `db:"type_name"`
	CategoryName *string `db:"category_name"`
	AuthorName   *string `db:"author_name"`

	// Section columns.
	Subtitle       *string `db:"subtitle"`
	SectionContent *string `db:"section_content"`

	// Product columns.
	ProductName        *string  `db:"product_name"`
	ProductImage       *string  `db:"product_image"`
	ProductDescription *string  `db:"product_description"`
	Pros               *string  `db:"pros"`
	Cons               *string  `db:"cons"`
	AffiliateURL       *string  `db:"affiliate_url"`
	BrandAffiliateURL  *string  `db:"brand_affiliate_url"`
	Rating             *float64 `db:"rating"`
	DisplayOrder       *int     `db:"display_order"`
}

// Section is one body block of an article.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Product is one reviewed product attached to an article.
type Product struct {
	Name              string  `json:"name"`
	ImageURL          string  `json:"image_url"`
	Description       string  `json:"description"`
	Pros              string  `json:"pros"`
	Cons              string  `json:"cons"`
	AffiliateURL      string  `json:"affiliate_url"`
	BrandAffiliateURL string  `json:"brand_affiliate_url"`
	Rating            float64 `json:"rating"`
	DisplayOrder      int     `json:"display_order"`
}

// Article is the aggregated form: scalars copied verbatim from the first
// row seen for the id, children accumulated in row order.
type Article struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	TypeID       *int64    `json:"type_id"`
	CategoryID   *int64    `json:"category_id"`
	AuthorID     *int64    `json:"author_id"`
	Status       string    `json:"status"`
	Language     string    `json:"language"`
	TypeName     string    `json:"type_name,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	AuthorName   string    `json:"author_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Sections []Section `json:"sections"`
	Products []Product `json:"products"`
}
