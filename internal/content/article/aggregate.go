// internal/content/article/aggregate.go
//
// Fold the flat listing join into one nested Article per distinct id.
//
// Context
// -------
// Rows arrive ordered by the query (articles by created_at DESC, child
// order unspecified).  Aggregation walks them once, keyed by article id,
// so output order is the order each id first appeared and each article's
// children keep the order their rows were returned in.  Children are NOT
// re-sorted by display_order here; callers that want that order must sort
// the slices themselves.
package article

// Aggregate folds flat join rows into nested articles.  It allocates a
// fresh result on every call and never mutates its input, so re-running it
// on the same rows yields a deep-equal result.
func Aggregate(rows []Row) []Article {
	byID := make(map[int64]*Article, len(rows))
	order := make([]int64, 0, len(rows))

	for _, r := range rows {
		a, ok := byID[r.ID]
		if !ok {
			a = newArticle(r)
			byID[r.ID] = a
			order = append(order, r.ID)
		}

		if r.SectionContent != nil && *r.SectionContent != "" {
			a.Sections = append(a.Sections, Section{
				Title:   deref(r.Subtitle),
				Content: *r.SectionContent,
			})
		}
		if r.ProductName != nil && *r.ProductName != "" {
			a.Products = append(a.Products, Product{
				Name:              *r.ProductName,
				ImageURL:          deref(r.ProductImage),
				Description:       deref(r.ProductDescription),
				Pros:              deref(r.Pros),
				Cons:              deref(r.Cons),
				AffiliateURL:      deref(r.AffiliateURL),
				BrandAffiliateURL: deref(r.BrandAffiliateURL),
				Rating:            derefF(r.Rating),
				DisplayOrder:      derefI(r.DisplayOrder),
			})
		}
	}

	out := make([]Article, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

// newArticle copies the scalar columns of the first row seen for an id.
// Children start as empty, non-nil slices so a childless article renders
// as `"sections": []`, not a missing key.
func newArticle(r Row) *Article {
	return &Article{
		ID:           r.ID,
		Title:        r.Title,
		Slug:         r.Slug,
		TypeID:       r.TypeID,
		CategoryID:   r.CategoryID,
		AuthorID:     r.AuthorID,
		Status:       r.Status,
		Language:     r.Language,
		TypeName:     deref(r.TypeName),
		CategoryName: deref(r.CategoryName),
		AuthorName:   deref(r.AuthorName),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Sections:     []Section{},
		Products:     []Product{},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefF(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefI(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
