package source

import (
	"testing"
)

func apartmentsFamily(t *testing.T) Family {
	t.Helper()
	f, ok := ByName("apartments")
	if !ok {
		t.Fatal("apartments family not registered")
	}
	return f
}

// --- HarvestLinks ---

func TestHarvestLinks_ItemListOnly(t *testing.T) {
	// A listing page whose only signal is a structured-data item list:
	// harvest must return exactly those URLs, order preserved, query
	// strings stripped.
	doc := parseDoc(t, `<html><head><script type="application/ld+json">
	{"@type":"ItemList","itemListElement":[
		{"@type":"ListItem","position":1,"url":"https://www.apartments.com/oakwood-gardens/abc1/?utm=x"},
		{"@type":"ListItem","position":2,"url":"https://www.apartments.com/bay-pointe/abc2/"},
		{"@type":"ListItem","position":3,"url":"https://www.apartments.com/elm-court/abc3/"}
	]}</script></head><body><p>No anchors here.</p></body></html>`)

	got := apartmentsFamily(t).HarvestLinks(doc, "https://www.apartments.com/miami-fl/")
	want := []string{
		"https://www.apartments.com/oakwood-gardens/abc1",
		"https://www.apartments.com/bay-pointe/abc2",
		"https://www.apartments.com/elm-court/abc3",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d links, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHarvestLinks_DedupesAcrossStrategies(t *testing.T) {
	// The same URL appears in the item list and as a matching anchor.
	doc := parseDoc(t, `<html><head><script type="application/ld+json">
	{"@type":"ItemList","itemListElement":[
		{"@type":"ListItem","position":1,"url":"https://www.apartments.com/oakwood-gardens/abc1/"}
	]}</script></head><body>
	<a class="property-link" href="https://www.apartments.com/oakwood-gardens/abc1/">Oakwood Gardens</a>
	</body></html>`)

	got := apartmentsFamily(t).HarvestLinks(doc, "https://www.apartments.com/miami-fl/")
	if len(got) != 1 {
		t.Fatalf("expected cross-strategy dedupe to 1 link, got %d: %v", len(got), got)
	}
}

func TestHarvestLinks_ResolvesRelative(t *testing.T) {
	doc := parseDoc(t, `<html><body>
	<a class="property-link" href="/oakwood-gardens/abc1/">Oakwood Gardens</a>
	</body></html>`)

	got := apartmentsFamily(t).HarvestLinks(doc, "https://www.apartments.com/miami-fl/")
	if len(got) != 1 || got[0] != "https://www.apartments.com/oakwood-gardens/abc1" {
		t.Errorf("expected resolved absolute link, got %v", got)
	}
}

func TestHarvestLinks_RejectsForeignHosts(t *testing.T) {
	doc := parseDoc(t, `<html><body>
	<a class="property-link" href="https://www.example.com/not-ours/">Elsewhere</a>
	<a class="property-link" href="https://www.apartments.com/ours/x1/">Ours</a>
	</body></html>`)

	got := apartmentsFamily(t).HarvestLinks(doc, "https://www.apartments.com/miami-fl/")
	if len(got) != 1 || got[0] != "https://www.apartments.com/ours/x1" {
		t.Errorf("expected foreign host filtered, got %v", got)
	}
}

func TestHarvestLinks_PathFragmentHint(t *testing.T) {
	doc := parseDoc(t, `<html><body>
	<a href="https://www.apartments.com/property/oakwood/">detail</a>
	<a href="https://www.apartments.com/about">about</a>
	</body></html>`)

	got := apartmentsFamily(t).HarvestLinks(doc, "https://www.apartments.com/miami-fl/")
	if len(got) != 1 || got[0] != "https://www.apartments.com/property/oakwood" {
		t.Errorf("expected only the /property/ link, got %v", got)
	}
}

func TestHarvestLinks_GenericFallbackDepth(t *testing.T) {
	f, ok := ByName("apartmentlist")
	if !ok {
		t.Fatal("apartmentlist family not registered")
	}
	doc := parseDoc(t, `<html><body>
	<a href="/fl/miami/oakwood-gardens">deep enough</a>
	<a href="/fl/miami">listing, too shallow</a>
	<a href="/about">shallow</a>
	</body></html>`)

	got := f.HarvestLinks(doc, "https://www.apartmentlist.com/fl/miami")
	if len(got) != 1 || got[0] != "https://www.apartmentlist.com/fl/miami/oakwood-gardens" {
		t.Errorf("expected one deep link, got %v", got)
	}
}

// --- IsDetailPage ---

func TestIsDetailPage_ManagedByLabel(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>Managed by Greystar</p></body></html>`)
	if !apartmentsFamily(t).IsDetailPage(doc) {
		t.Error("managed-by label should classify as detail page")
	}
}

func TestIsDetailPage_StructuralMarker(t *testing.T) {
	doc := parseDoc(t, `<html><body><h1 id="propertyName">Oakwood Gardens</h1></body></html>`)
	if !apartmentsFamily(t).IsDetailPage(doc) {
		t.Error("structural marker should classify as detail page")
	}
}

func TestIsDetailPage_StructuredDataType(t *testing.T) {
	doc := parseDoc(t, `<html><head>
	<script type="application/ld+json">{"@type":"ApartmentComplex","name":"Oakwood"}</script>
	</head><body><p>nothing else</p></body></html>`)
	if !apartmentsFamily(t).IsDetailPage(doc) {
		t.Error("apartment-like structured data should classify as detail page")
	}
}

func TestIsDetailPage_RejectsNoise(t *testing.T) {
	doc := parseDoc(t, `<html><body><h2>Search results for Miami</h2><ul><li>one</li></ul></body></html>`)
	if apartmentsFamily(t).IsDetailPage(doc) {
		t.Error("plain listing page should not classify as detail page")
	}
}

// --- Extract ---

func TestExtract_StructuredNameBeatsHeading(t *testing.T) {
	doc := parseDoc(t, `<html><head>
	<script type="application/ld+json">{"@type":"ApartmentComplex","name":"Oakwood Gardens"}</script>
	</head><body><h1>Welcome Home</h1></body></html>`)

	rec := apartmentsFamily(t).Extract(doc, "https://www.apartments.com/oakwood/x1")
	if rec.Name != "Oakwood Gardens" {
		t.Errorf("structured-data name should win, got %q", rec.Name)
	}
}

func TestExtract_HeadingFallback(t *testing.T) {
	doc := parseDoc(t, `<html><body><h1>Bay Pointe Apartments</h1></body></html>`)
	rec := apartmentsFamily(t).Extract(doc, "https://www.apartments.com/bay-pointe/x1")
	if rec.Name != "Bay Pointe Apartments" {
		t.Errorf("expected heading fallback, got %q", rec.Name)
	}
}

func TestExtract_StructuredAddress(t *testing.T) {
	doc := parseDoc(t, `<html><head>
	<script type="application/ld+json">{"@type":"ApartmentComplex","name":"Bay Pointe",
	"address":{"streetAddress":"100 Ocean Dr","addressLocality":"Miami","addressRegion":"FL","postalCode":"33139"}}</script>
	</head><body></body></html>`)

	rec := apartmentsFamily(t).Extract(doc, "https://www.apartments.com/bay-pointe/x1")
	if rec.Address != "100 Ocean Dr, Miami, FL 33139" {
		t.Errorf("unexpected address %q", rec.Address)
	}
}

func TestExtract_AddressDOMFallback(t *testing.T) {
	doc := parseDoc(t, `<html><body>
	<h1>Bay Pointe</h1>
	<div class="propertyAddressContainer">100 Ocean Dr,
	Miami, FL 33139</div>
	</body></html>`)

	rec := apartmentsFamily(t).Extract(doc, "https://www.apartments.com/bay-pointe/x1")
	if rec.Address != "100 Ocean Dr, Miami, FL 33139" {
		t.Errorf("unexpected address %q", rec.Address)
	}
}

func TestExtract_PhoneClickToCall(t *testing.T) {
	doc := parseDoc(t, `<html><body>
	<h1>Bay Pointe</h1>
	<a href="tel:+13055550100">(305) 555-0100</a>
	</body></html>`)

	rec := apartmentsFamily(t).Extract(doc, "https://www.apartments.com/bay-pointe/x1")
	if rec.Phone != "(305) 555-0100" {
		t.Errorf("unexpected phone %q", rec.Phone)
	}
}

func TestExtract_PhonePatternFallback(t *testing.T) {
	doc := parseDoc(t, `<html><body>
	<h1>Bay Pointe</h1>
	<p>Call our leasing office at 305-555-0100 today.</p>
	</body></html>`)

	rec := apartmentsFamily(t).Extract(doc, "https://www.apartments.com/bay-pointe/x1")
	if rec.Phone != "305-555-0100" {
		t.Errorf("unexpected phone %q", rec.Phone)
	}
}

func TestExtract_ManagedByLink(t *testing.T) {
	doc := parseDoc(t, `<html><body>
	<h1>Bay Pointe</h1>
	<div><span>Managed by</span> <a href="/mgmt/greystar">Greystar</a></div>
	</body></html>`)

	rec := apartmentsFamily(t).Extract(doc, "https://www.apartments.com/bay-pointe/x1")
	if rec.Management != "Greystar" {
		t.Errorf("unexpected management %q", rec.Management)
	}
	if rec.MgmtURL != "https://www.apartments.com/mgmt/greystar" {
		t.Errorf("expected absolute mgmt URL, got %q", rec.MgmtURL)
	}
}

func TestExtract_ManagedByTrailingText(t *testing.T) {
	doc := parseDoc(t, `<html><body>
	<h1>Bay Pointe</h1>
	<p>Managed by Lincoln Property Company</p>
	</body></html>`)

	rec := apartmentsFamily(t).Extract(doc, "https://www.apartments.com/bay-pointe/x1")
	if rec.Management != "Lincoln Property Company" {
		t.Errorf("unexpected management %q", rec.Management)
	}
	if rec.MgmtURL != "" {
		t.Errorf("expected no mgmt URL, got %q", rec.MgmtURL)
	}
}

func TestExtract_StructuredBrandWins(t *testing.T) {
	doc := parseDoc(t, `<html><head>
	<script type="application/ld+json">{"@type":"ApartmentComplex","name":"Bay Pointe","brand":{"name":"Greystar"}}</script>
	</head><body><p>Managed by Somebody Else</p></body></html>`)

	rec := apartmentsFamily(t).Extract(doc, "https://www.apartments.com/bay-pointe/x1")
	if rec.Management != "Greystar" {
		t.Errorf("structured brand should win, got %q", rec.Management)
	}
}

func TestExtract_EmailNeverPopulated(t *testing.T) {
	doc := parseDoc(t, `<html><body>
	<h1>Bay Pointe</h1>
	<p>Contact us at leasing@baypointe.com</p>
	</body></html>`)

	rec := apartmentsFamily(t).Extract(doc, "https://www.apartments.com/bay-pointe/x1")
	if rec.Email != "" {
		t.Errorf("detail-page extraction must leave email empty, got %q", rec.Email)
	}
}

func TestExtract_SetsSourceFields(t *testing.T) {
	doc := parseDoc(t, `<html><body><h1>Bay Pointe</h1></body></html>`)
	rec := apartmentsFamily(t).Extract(doc, "https://www.apartments.com/bay-pointe/x1")
	if rec.SourceURL != "https://www.apartments.com/bay-pointe/x1" {
		t.Errorf("unexpected source URL %q", rec.SourceURL)
	}
	if rec.Source != "apartments" {
		t.Errorf("unexpected source tag %q", rec.Source)
	}
}
