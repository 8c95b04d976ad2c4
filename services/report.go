package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"hotel-scout/models"
)

// Reporter prints the user-facing console report.
type Reporter struct {
	out    io.Writer
	colors bool
}

// NewReporter creates a Reporter writing to out; colors toggles ANSI styling.
func NewReporter(out io.Writer, colors bool) *Reporter {
	return &Reporter{out: out, colors: colors}
}

func (r *Reporter) paint(c text.Color, s string) string {
	if !r.colors {
		return s
	}
	return c.Sprint(s)
}

func (r *Reporter) line(s string) {
	fmt.Fprintln(r.out, s)
}

func (r *Reporter) Searching() {
	r.line(r.paint(text.FgBlue, "Searching for hotels..."))
}

func (r *Reporter) TryingFallback() {
	r.line(r.paint(text.FgYellow, "Primary source returned no results. Trying fallback source..."))
}

func (r *Reporter) NoResults() {
	r.line(r.paint(text.FgYellow, "No hotels found. Try a different city."))
}

func (r *Reporter) AveragePrice(avg *float64) {
	if avg == nil {
		r.line("Average price of all found hotels: N/A")
		return
	}
	r.line(fmt.Sprintf("Average price of all found hotels: %.2f", *avg))
}

func (r *Reporter) CurrencyWarning(code string) {
	r.line(r.paint(text.FgYellow, fmt.Sprintf("Warning: Budget currency %s may not match results.", code)))
}

// Table renders the filtered listings with the best-value row highlighted.
func (r *Reporter) Table(listings []models.Listing, best *models.Listing) {
	r.line("")
	if len(listings) == 0 {
		r.line(r.paint(text.FgYellow, "No hotels matched your budget."))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Hotel", "Rating", "Price", "Currency"})

	for _, l := range listings {
		cells := []string{l.Name, formatRating(l.Rating), formatPrice(l.Price), orNA(l.CurrencyCode())}
		if isBest(l, best) {
			for i := range cells {
				cells[i] = r.paint(text.FgGreen, cells[i])
			}
		}
		t.AppendRow(table.Row{cells[0], cells[1], cells[2], cells[3]})
	}
	t.Render()
}

func (r *Reporter) Saved(paths ...string) {
	r.line("Saved results to " + strings.Join(paths, ", "))
}

func (r *Reporter) BestValue(best *models.Listing) {
	if best == nil {
		r.line(r.paint(text.FgYellow, "Best Value: N/A"))
		return
	}
	price := formatPrice(best.Price)
	if code := best.CurrencyCode(); code != "" {
		price += " " + code
	}
	summary := fmt.Sprintf("Best Value: %s (%s rating, %s)", best.Name, formatRating(best.Rating), price)
	r.line(r.paint(text.FgGreen, summary))
}

// isBest matches on name and price, the same identity the table uses.
func isBest(l models.Listing, best *models.Listing) bool {
	if best == nil || l.Name != best.Name || l.HasPrice() != best.HasPrice() {
		return false
	}
	return l.PriceValue() == best.PriceValue()
}

func formatRating(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *v)
}

func formatPrice(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
