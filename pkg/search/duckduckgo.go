package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	// DefaultEndpoint is the DuckDuckGo instant answer API.
	DefaultEndpoint = "https://api.duckduckgo.com/"
	// DefaultTimeout bounds a single lookup.
	DefaultTimeout = 10 * time.Second

	// UnavailablePlaceholder is returned when the lookup itself fails.
	UnavailablePlaceholder = "Search unavailable. Using standard interview process for the role."

	snippetRunes     = 1500
	companyInfoRunes = 2000
	relatedTopics    = 3
	queriesIssued    = 2
)

// Client queries the instant answer API. Its methods never return errors;
// failures turn into placeholder text and a warning log line.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a search client. An empty endpoint or non-positive
// timeout selects the defaults.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) (client *Client) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	client = &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
	return client
}

// NoResultsText is the snippet returned when a query matched nothing useful.
func NoResultsText(query string) (text string) {
	text = fmt.Sprintf("Search for '%s' didn't return specific results. Using standard interview process.", query)
	return text
}

// GenericProcess is the fallback description used when no query produced
// usable snippets.
func GenericProcess(company, role string) (text string) {
	text = fmt.Sprintf(`Standard interview process for %s positions at %s.
Typically includes:
- Technical screening round with coding questions
- System design discussion for mid-level and above roles
- Behavioral and cultural fit interviews
- Possible take-home assignment or live coding session

Focus on data structures, algorithms, and company-specific technologies.`, role, company)
	return text
}

// Queries lists the lookup variants for a company and role. Only the first
// two are issued per run.
func Queries(company, role string) (queries []string) {
	queries = []string{
		fmt.Sprintf("%s %s interview process", company, role),
		fmt.Sprintf("%s technical interview questions %s", company, role),
		fmt.Sprintf("%s hiring process %s", company, role),
		fmt.Sprintf("how to prepare for %s %s interview", company, role),
	}
	return queries
}

// Search returns a best-effort snippet for the query.
func (c *Client) Search(ctx context.Context, query string) (snippet string) {
	snippet, _ = c.lookup(ctx, query)
	return snippet
}

// CompanyInfo aggregates snippets about the company's interview process.
// Placeholder snippets are dropped. When nothing usable remains the result is
// UnavailablePlaceholder if any lookup failed, otherwise the generic process
// paragraph.
func (c *Client) CompanyInfo(ctx context.Context, company, role string) (info string) {
	var parts []string
	failed := false
	for _, query := range Queries(company, role)[:queriesIssued] {
		snippet, result := c.lookup(ctx, query)
		switch result {
		case lookupFound:
			parts = append(parts, snippet)
		case lookupFailed:
			failed = true
		case lookupEmpty:
		}
	}

	if len(parts) > 0 {
		info = truncateRunes(strings.Join(parts, " "), companyInfoRunes)
		return info
	}

	if failed {
		info = UnavailablePlaceholder
		return info
	}

	info = GenericProcess(company, role)
	return info
}

type lookupResult int

const (
	lookupFound lookupResult = iota
	lookupEmpty
	lookupFailed
)

// lookup performs one query. Anything but lookupFound comes with placeholder
// text rather than real search content.
func (c *Client) lookup(ctx context.Context, query string) (snippet string, result lookupResult) {
	body, err := c.fetch(ctx, query)
	if err != nil {
		c.logger.Warn("search failed", slog.String("query", query), slog.Any("error", err))
		snippet = UnavailablePlaceholder
		result = lookupFailed
		return snippet, result
	}

	if !gjson.ValidBytes(body) {
		c.logger.Warn("search returned malformed response", slog.String("query", query))
		snippet = UnavailablePlaceholder
		result = lookupFailed
		return snippet, result
	}

	results := extractSnippets(gjson.ParseBytes(body))
	if len(results) == 0 {
		snippet = NoResultsText(query)
		result = lookupEmpty
		return snippet, result
	}

	snippet = truncateRunes(strings.Join(results, " "), snippetRunes)
	result = lookupFound
	return snippet, result
}

func (c *Client) fetch(ctx context.Context, query string) (body []byte, err error) {
	var reqURL *url.URL
	reqURL, err = url.Parse(c.endpoint)
	if err != nil {
		err = errors.Wrapf(err, "invalid search endpoint: %s", c.endpoint)
		return body, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")
	reqURL.RawQuery = params.Encode()

	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return body, err
	}
	req.Header.Set("User-Agent", "interview-roadmap/1.0")

	var resp *http.Response
	resp, err = c.httpClient.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return body, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return body, err
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return body, err
	}

	return body, err
}

// extractSnippets collects the abstract and the text of the first few
// related topics.
func extractSnippets(doc gjson.Result) (results []string) {
	if abstract := strings.TrimSpace(doc.Get("Abstract").String()); abstract != "" {
		results = append(results, abstract)
	}

	topics := doc.Get("RelatedTopics").Array()
	if len(topics) > relatedTopics {
		topics = topics[:relatedTopics]
	}
	for _, topic := range topics {
		if text := strings.TrimSpace(topic.Get("Text").String()); text != "" {
			results = append(results, text)
		}
	}

	return results
}

func truncateRunes(s string, limit int) (out string) {
	if utf8.RuneCountInString(s) <= limit {
		out = s
		return out
	}
	out = string([]rune(s)[:limit])
	return out
}
