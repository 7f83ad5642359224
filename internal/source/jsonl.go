package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
)

// JSONLSource reads posts from a newline-delimited JSON file, one
// RawPost per line. Useful for replaying captured post sets without an
// API key.
type JSONLSource struct {
	path string
}

// NewJSONLSource creates a file-backed post source.
func NewJSONLSource(path string) *JSONLSource {
	return &JSONLSource{path: path}
}

// FetchPosts returns up to limit posts for the handle, in file order.
// Posts by other authors are ignored; handle matching is
// case-insensitive. Blank lines are allowed.
func (s *JSONLSource) FetchPosts(ctx context.Context, handle string, limit int) ([]contracts.RawPost, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open post file: %w", err)
	}
	defer f.Close()

	var posts []contracts.RawPost
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var post contracts.RawPost
		if err := json.Unmarshal([]byte(raw), &post); err != nil {
			return nil, fmt.Errorf("bad post on line %d: %w", line, err)
		}
		if !strings.EqualFold(post.AuthorHandle, handle) {
			continue
		}

		posts = append(posts, post)
		if len(posts) == limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read post file: %w", err)
	}
	return posts, nil
}

var _ contracts.PostSource = (*JSONLSource)(nil)
