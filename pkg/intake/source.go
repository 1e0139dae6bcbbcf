package intake

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const fetchTimeout = 30 * time.Second

var (
	scriptOrStyle = regexp.MustCompile(`(?is)<(script|style)\b.*?</(script|style)>`)
	htmlTag       = regexp.MustCompile(`(?s)<[^>]*>`)
	blankRuns     = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)+`)
)

// LoadJobDescription reads a job description from a file path or an
// http(s) URL. HTML pages are reduced to their text.
func LoadJobDescription(ctx context.Context, source string) (jd string, err error) {
	parsed, urlErr := url.Parse(source)
	if urlErr == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		jd, err = fetchURL(ctx, source)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch job description from URL: %s", source)
			return jd, err
		}
	} else {
		var data []byte
		data, err = os.ReadFile(source)
		if err != nil {
			err = errors.Wrapf(err, "failed to read job description file: %s", source)
			return jd, err
		}
		jd = string(data)
	}

	if strings.TrimSpace(jd) == "" {
		err = errors.Wrapf(ErrEmptyJobDescription, "%s", source)
		return jd, err
	}

	return jd, err
}

func fetchURL(ctx context.Context, rawURL string) (text string, err error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return text, err
	}
	req.Header.Set("User-Agent", "interview-roadmap/1.0")

	var resp *http.Response
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return text, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return text, err
	}

	var body []byte
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return text, err
	}

	text = stripHTML(string(body))
	return text, err
}

// stripHTML drops scripts, styles and tags, and collapses blank lines.
func stripHTML(html string) (text string) {
	text = scriptOrStyle.ReplaceAllString(html, "")
	text = htmlTag.ReplaceAllString(text, "")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)
	return text
}
