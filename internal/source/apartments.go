package source

import (
	"fmt"
	"strings"
)

// newApartments builds the apartments.com family. Its detail links are
// well marked (placard cards with property-link anchors), so it carries
// no generic fallback.
func newApartments() *family {
	return &family{
		name: "apartments",
		host: "apartments.com",

		listing: apartmentsListingURLs,

		hints: []anchorHint{
			{Selector: "a.property-link"},
			{Selector: "article.placard a"},
			{PathFragment: "/property/"},
			{PathFragment: "/apartments/"},
		},

		markers: []string{
			"h1#propertyName",
			".propertyAddressContainer",
			"#pricingView",
		},

		headingSelectors: []string{"h1#propertyName", "h1", "h2"},

		// More specific than the apartmentlist chain on purpose; the
		// two sites label their address blocks differently.
		addressSelectors: []string{
			`[data-testid="property-address"]`,
			".propertyAddressContainer",
			"address",
			`div[class*="propertyAddress"]`,
		},
	}
}

// apartmentsListingURLs builds the city landing page plus pagination
// variants. Some geos use ?page=N, some support /N/, so both are
// emitted for every page past the first.
func apartmentsListingURLs(city, state string, pages int) []string {
	base := fmt.Sprintf("https://www.apartments.com/%s-%s/", citySlug(city), strings.ToLower(strings.TrimSpace(state)))
	urls := []string{base}
	for p := 2; p <= pages; p++ {
		urls = append(urls, fmt.Sprintf("%s?page=%d", base, p))
		urls = append(urls, fmt.Sprintf("%s%d/", base, p))
	}
	return urls
}
