// Package extract turns memory sources (files, PDFs, web pages) into plain
// text suitable for indexing.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// maxFetchSize caps how much of a remote page is read.
const maxFetchSize = 5 << 20

// FromFile reads path and returns its text content. PDFs are reduced to
// their plain text; everything else is returned verbatim.
func FromFile(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdfText(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func pdfText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	r, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text from %s: %w", path, err)
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return "", fmt.Errorf("extracting pdf text from %s: %w", path, err)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("pdf %s contains no extractable text", path)
	}
	return text, nil
}

// FromURL fetches a page with client and reduces its HTML to visible text.
// Non-HTML responses are returned as-is.
func FromURL(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetching %s: server returned %d", url, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxFetchSize)
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "html") {
		data, err := io.ReadAll(body)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", url, err)
		}
		return string(data), nil
	}

	doc, err := html.Parse(body)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", url, err)
	}
	text := strings.TrimSpace(visibleText(doc))
	if text == "" {
		return "", fmt.Errorf("page %s contains no visible text", url)
	}
	return text, nil
}

// visibleText walks the parse tree collecting text nodes, skipping subtrees
// that never render.
func visibleText(n *html.Node) string {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript":
			return ""
		}
	}

	var sb strings.Builder
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			sb.WriteString(t)
			sb.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(visibleText(c))
	}
	return sb.String()
}
