package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/mkravets/jobscout/internal/models"
)

const (
	httpTimeout = 15 * time.Second
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:103.0) Gecko/20100101 Firefox/103.0"
)

// Fetcher scrapes listing index pages and per-listing detail pages from
// the job board. Every outbound request waits on the limiter first; the
// politeness delay is a hard rate limit, not best-effort.
type Fetcher struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	now     func() time.Time
}

// NewFetcher constructs a fetcher with a shared HTTP client and a fixed
// minimum delay between requests.
func NewFetcher(baseURL string, delay time.Duration) *Fetcher {
	return &Fetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: httpTimeout},
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		now:     time.Now,
	}
}

// FetchAll scrapes every category of the vocabulary sequentially. A failed
// category is logged and skipped; it never aborts the run.
func (f *Fetcher) FetchAll(ctx context.Context) []models.RawListing {
	var all []models.RawListing
	for _, category := range models.Categories {
		listings, err := f.FetchCategory(ctx, category)
		if err != nil {
			log.Printf("[scraper] category %q failed: %v, continuing", category, err)
			continue
		}
		all = append(all, listings...)
	}
	return all
}

// FetchCategory retrieves the index page for one category, parses a
// summary block per posting and follows each posting's URL for the full
// description. A listing missing a required element is logged and skipped;
// a failed index page yields an empty result.
func (f *Fetcher) FetchCategory(ctx context.Context, category string) ([]models.RawListing, error) {
	indexURL := fmt.Sprintf("%s/vacancies/?category=%s", f.baseURL, url.QueryEscape(category))

	doc, err := f.fetchDocument(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("index page: %w", err)
	}

	var listings []models.RawListing
	doc.Find("li.l-vacancy").Each(func(_ int, sel *goquery.Selection) {
		listing, err := f.parseListing(ctx, sel, category)
		if err != nil {
			log.Printf("[scraper] skipping listing in %q: %v", category, err)
			return
		}
		listings = append(listings, listing)
	})

	log.Printf("[scraper] category %q: %d listings", category, len(listings))
	return listings, nil
}

func (f *Fetcher) parseListing(ctx context.Context, sel *goquery.Selection, category string) (models.RawListing, error) {
	var listing models.RawListing

	dateText := sel.Find("div.date").Text()
	if dateText == "" {
		return listing, fmt.Errorf("missing date block")
	}
	datePosted, err := ParseUkrainianDate(dateText, f.now())
	if err != nil {
		return listing, err
	}

	title := sel.Find("a.vt")
	jobURL, ok := title.Attr("href")
	if !ok || title.Length() == 0 {
		return listing, fmt.Errorf("missing title anchor")
	}

	company := sel.Find("a.company")
	companyURL, ok := company.Attr("href")
	if !ok || company.Length() == 0 {
		return listing, fmt.Errorf("missing company anchor")
	}

	listing = models.RawListing{
		DatePosted:      datePosted,
		JobTitle:        trimmed(title),
		JobURL:          jobURL,
		CompanyName:     trimmed(company),
		CompanyURL:      companyURL,
		Salary:          textOr(sel.Find("span.salary"), "Not specified"),
		Location:        textOr(sel.Find("span.cities"), "Location not specified"),
		ShortInfo:       textOr(sel.Find("div.sh-info"), "No description provided"),
		FullDescription: "No full description",
		Category:        category,
	}

	detail, err := f.fetchDocument(ctx, jobURL)
	if err != nil {
		return listing, fmt.Errorf("detail page for %q: %w", listing.JobTitle, err)
	}
	if desc := detail.Find("div.b-typo.vacancy-section"); desc.Length() > 0 {
		listing.FullDescription = trimmed(desc.First())
	}

	return listing, nil
}

// fetchDocument performs one rate-limited GET and parses the body.
func (f *Fetcher) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s returned %d", pageURL, resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func trimmed(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

func textOr(sel *goquery.Selection, fallback string) string {
	if sel.Length() == 0 {
		return fallback
	}
	if text := strings.TrimSpace(sel.Text()); text != "" {
		return text
	}
	return fallback
}
