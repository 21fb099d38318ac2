package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/baalimago/mathobj/internal/host"
	"golang.org/x/net/html"
)

// URL selects the visible text of the web page at url
func URL(url string, client *http.Client) host.Selector {
	if client == nil {
		client = &http.Client{}
	}
	return host.SelectorFunc(func(ctx context.Context) (string, error) {
		return websiteText(ctx, client, url)
	})
}

func websiteText(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch website: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %v", resp.Status)
	}
	return extractText(resp.Body)
}

// extractText from html, skipping the content of script and style elements
func extractText(r io.Reader) (string, error) {
	var text strings.Builder
	tokenizer := html.NewTokenizer(r)
	skipDepth := 0
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(tokenizer.Err(), io.EOF) {
				return strings.TrimRight(text.String(), "\n"), nil
			}
			return "", fmt.Errorf("tokenizer error: %w", tokenizer.Err())
		case html.StartTagToken:
			if isInvisible(tokenizer) {
				skipDepth++
			}
		case html.EndTagToken:
			if isInvisible(tokenizer) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			trimmed := bytes.TrimSpace(tokenizer.Text())
			if len(trimmed) > 0 {
				text.Write(trimmed)
				text.WriteRune('\n')
			}
		}
	}
}

func isInvisible(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style", "noscript":
		return true
	}
	return false
}
