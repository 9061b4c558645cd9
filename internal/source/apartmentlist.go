package source

import (
	"fmt"
	"strings"
)

// newApartmentList builds the apartmentlist.com family. Its listing
// markup carries fewer stable anchors than apartments.com, so the
// harvester keeps the generic same-domain path-depth fallback enabled.
func newApartmentList() *family {
	return &family{
		name: "apartmentlist",
		host: "apartmentlist.com",

		listing: apartmentListListingURLs,

		hints: []anchorHint{
			{Selector: `a[data-testid="listing-card-link"]`},
		},
		genericFallback: true,
		// Detail pages look like /fl/miami/oakwood-gardens; listing
		// pages stop at two segments.
		minPathDepth: 3,

		markers: []string{
			`[data-testid="community-header"]`,
			"#floorplans",
		},

		headingSelectors: []string{"h1", "h2"},

		addressSelectors: []string{
			"address",
			`div[class*="address"]`,
		},
	}
}

func apartmentListListingURLs(city, state string, pages int) []string {
	base := fmt.Sprintf("https://www.apartmentlist.com/%s/%s", strings.ToLower(strings.TrimSpace(state)), citySlug(city))
	urls := []string{base}
	for p := 2; p <= pages; p++ {
		urls = append(urls, fmt.Sprintf("%s?page=%d", base, p))
	}
	return urls
}
