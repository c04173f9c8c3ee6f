// internal/browse/search.go
package browse

import "gigboard/internal/models"

// Search returns the gigs whose title or description contains term,
// ignoring case the way Highlight does. An empty term returns every gig. The term is used as typed.
func Search(gigs []models.Gig, term string) []models.Gig {
	if term == "" {
		return append([]models.Gig(nil), gigs...)
	}
	var out []models.Gig
	for _, g := range gigs {
		if containsFold(g.Title, term) || containsFold(g.Description, term) {
			out = append(out, g)
		}
	}
	return out
}
