// Package evidence fetches related news coverage for a debate topic.
package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Notice is returned when no evidence can be gathered at all.
const Notice = "OSINT evidence gathering is currently unavailable."

// maxArticleChars caps the extracted text per article so a long read does
// not blow the prompt budget.
const maxArticleChars = 4000

// Source produces background evidence text for a topic. Implementations
// never fail; they degrade to whatever they could gather.
type Source interface {
	Gather(ctx context.Context, topic string) string
}

// Gatherer fetches up to maxArticles related news articles and extracts
// readable text, degrading to headlines, then to a static notice.
type Gatherer struct {
	newsURL     string
	newsAPIKey  string
	readerURL   string
	readerKey   string
	maxArticles int
	httpClient  *http.Client
}

// NewGatherer creates a gatherer. The timeout applies per request; this is
// the only HTTP client in the system that carries one.
func NewGatherer(newsURL, newsAPIKey, readerURL, readerKey string, maxArticles int, timeout time.Duration) *Gatherer {
	return &Gatherer{
		newsURL:     strings.TrimSuffix(newsURL, "/"),
		newsAPIKey:  newsAPIKey,
		readerURL:   strings.TrimSuffix(readerURL, "/"),
		readerKey:   readerKey,
		maxArticles: maxArticles,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// article is one entry from the news search response.
type article struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Author string `json:"author"`
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
}

type searchResponse struct {
	Status   string    `json:"status"`
	Articles []article `json:"articles"`
}

// Gather collects evidence text for the topic. It never returns an error:
// article bodies degrade to headlines, headlines degrade to the static
// notice.
func (g *Gatherer) Gather(ctx context.Context, topic string) string {
	if g.newsAPIKey == "" {
		return Notice
	}

	articles, err := g.searchNews(ctx, topic)
	if err != nil {
		log.Printf("WARN: news search failed: %v", err)
		return Notice
	}
	if len(articles) == 0 {
		return Notice
	}

	var sections []string
	for _, a := range articles {
		text, err := g.readArticle(ctx, a.URL)
		if err != nil {
			log.Printf("WARN: failed to read article %s: %v", a.URL, err)
			continue
		}
		sections = append(sections, fmt.Sprintf("--- SOURCE: %s (%s) ---\n%s", a.Title, a.Source.Name, text))
	}

	if len(sections) == 0 {
		lines := make([]string, 0, len(articles))
		for _, a := range articles {
			lines = append(lines, fmt.Sprintf("- %s (%s)", a.Title, a.Source.Name))
		}
		return "Recent headlines:\n" + strings.Join(lines, "\n")
	}

	return strings.Join(sections, "\n\n")
}

// searchNews queries the news API for articles related to the topic.
func (g *Gatherer) searchNews(ctx context.Context, topic string) ([]article, error) {
	q := url.Values{}
	q.Set("q", topic)
	q.Set("sortBy", "relevancy")
	q.Set("pageSize", strconv.Itoa(g.maxArticles))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.newsURL+"/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", g.newsAPIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news API returned HTTP %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode news response: %w", err)
	}

	if len(result.Articles) > g.maxArticles {
		result.Articles = result.Articles[:g.maxArticles]
	}
	return result.Articles, nil
}

// readArticle fetches an article body as plain text, preferring the reader
// endpoint and falling back to a direct fetch with HTML extraction.
func (g *Gatherer) readArticle(ctx context.Context, articleURL string) (string, error) {
	if g.readerURL != "" {
		text, err := g.readThroughReader(ctx, articleURL)
		if err == nil {
			return text, nil
		}
		log.Printf("WARN: reader fetch failed for %s: %v", articleURL, err)
	}
	return g.fetchAndExtract(ctx, articleURL)
}

// readThroughReader fetches the article through the render endpoint, which
// returns extracted plain text.
func (g *Gatherer) readThroughReader(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.readerURL+"/"+articleURL, nil)
	if err != nil {
		return "", err
	}
	if g.readerKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.readerKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 500*1024))
	if err != nil {
		return "", err
	}
	return truncate(strings.TrimSpace(string(body)), maxArticleChars), nil
}

// fetchAndExtract fetches the article directly and extracts readable text
// from its HTML.
func (g *Gatherer) fetchAndExtract(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}

	text := extractText(doc)
	if text == "" {
		return "", fmt.Errorf("no readable text")
	}
	return truncate(text, maxArticleChars), nil
}

// extractText walks the document and collects text nodes, skipping script
// and style subtrees.
func extractText(doc *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				sb.WriteString(s)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return strings.TrimSpace(sb.String())
}

// truncate shortens content to maxLen.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
