package booking

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"hotel-scout/models"
	"hotel-scout/services"
	"hotel-scout/utils"
)

const (
	cardSelector   = `div[data-testid="property-card"]`
	titleSelector  = `[data-testid="title"]`
	ratingSelector = `[data-testid="review-score"]`
	priceSelector  = `[data-testid="price-and-discounted-price"]`
)

// pricePattern matches a currency marker followed by a digit. The gap may hold
// Unicode spaces such as U+00A0, which Go's \s does not cover.
var pricePattern = regexp.MustCompile(`(?i)(\$|€|£|AED|SAR|OMR|USD|GBP|EUR|INR|₹|ر\.ع\.|﷼)[\s\p{Zs}]*[0-9]`)

// nameSelectors are tried in order inside a heuristic container.
var nameSelectors = []string{titleSelector, "h3", "h2", "h4", "a"}

// containerTags are the ancestors that can hold a heuristic listing.
var containerTags = map[string]struct{}{
	"div": {}, "article": {}, "li": {}, "section": {},
}

// Extractor turns a search results page into listings.
type Extractor struct {
	cleaner *services.Cleaner
	logger  *utils.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(logger *utils.Logger) *Extractor {
	return &Extractor{cleaner: services.NewCleaner(logger), logger: logger}
}

// Extract runs the structured stage and falls back to the heuristic stage
// when the structured markers match nothing.
func (e *Extractor) Extract(doc *goquery.Document) []models.Listing {
	listings := e.cleaner.Clean(e.structured(doc))
	if len(listings) > 0 {
		e.logger.Debug("[booking] Structured stage found %d listings", len(listings))
		return listings
	}

	e.logger.Info("[booking] No property cards matched — scanning for price-like text")
	listings = e.cleaner.Clean(e.heuristic(doc))
	e.logger.Debug("[booking] Heuristic stage found %d listings", len(listings))
	return listings
}

func (e *Extractor) structured(doc *goquery.Document) []models.RawListing {
	var raw []models.RawListing

	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		name := selectionText(card.Find(titleSelector).First(), "")
		if name == "" {
			return
		}
		raw = append(raw, models.RawListing{
			Name:      name,
			RawRating: selectionText(card.Find(ratingSelector).First(), " "),
			RawPrice:  selectionText(card.Find(priceSelector).First(), " "),
			Source:    "booking/structured",
		})
	})
	return raw
}

func (e *Extractor) heuristic(doc *goquery.Document) []models.RawListing {
	var raw []models.RawListing

	for _, root := range doc.Nodes {
		walkText(root, func(n *html.Node) {
			if !pricePattern.MatchString(n.Data) {
				return
			}
			container := nearestContainer(n)
			if container == nil {
				return
			}
			sel := doc.FindNodes(container)
			name := findName(sel)
			if name == "" {
				return
			}
			raw = append(raw, models.RawListing{
				Name:      name,
				RawRating: selectionText(sel, " "),
				RawPrice:  n.Data,
				Source:    "booking/heuristic",
			})
		})
	}
	return raw
}

// findName returns the first candidate name longer than two characters.
func findName(container *goquery.Selection) string {
	for _, selector := range nameSelectors {
		node := container.Find(selector).First()
		if node.Length() == 0 {
			continue
		}
		if name := selectionText(node, ""); utf8.RuneCountInString(name) > 2 {
			return name
		}
	}
	return ""
}

func nearestContainer(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if _, ok := containerTags[p.Data]; ok {
			return p
		}
	}
	return nil
}

// walkText visits text nodes in document order, skipping script and style bodies.
func walkText(n *html.Node, visit func(*html.Node)) {
	switch n.Type {
	case html.TextNode:
		visit(n)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, visit)
	}
}

// selectionText joins the trimmed, non-empty text fragments under sel with sep.
func selectionText(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range sel.Nodes {
		walkText(n, func(t *html.Node) {
			if s := strings.TrimSpace(t.Data); s != "" {
				parts = append(parts, s)
			}
		})
	}
	return strings.Join(parts, sep)
}
