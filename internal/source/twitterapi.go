package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/pkg/config"
	"github.com/cahrendt0815/alphahandle/pkg/httputil"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

// twitterTimeLayout is the classic Twitter timestamp format.
const twitterTimeLayout = "Mon Jan 02 15:04:05 -0700 2006"

// TwitterAPISource fetches an author's recent posts from the
// twitterapi.io proxy, following cursor pagination up to the requested
// limit.
type TwitterAPISource struct {
	http    *httputil.Client
	baseURL string
	apiKey  string
	logger  *logger.Logger
}

// NewTwitterAPISource creates a post source from social configuration.
func NewTwitterAPISource(cfg config.SocialConfig, log *logger.Logger) *TwitterAPISource {
	return &TwitterAPISource{
		http:    httputil.New(log),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  log,
	}
}

type tweetPage struct {
	Tweets []struct {
		ID        string `json:"id"`
		URL       string `json:"url"`
		Text      string `json:"text"`
		CreatedAt string `json:"createdAt"`
		Author    struct {
			UserName string `json:"userName"`
		} `json:"author"`
	} `json:"tweets"`
	HasNextPage bool   `json:"has_next_page"`
	NextCursor  string `json:"next_cursor"`
}

// FetchPosts returns up to limit recent posts for a handle, newest
// first as the provider delivers them.
func (s *TwitterAPISource) FetchPosts(ctx context.Context, handle string, limit int) ([]contracts.RawPost, error) {
	var posts []contracts.RawPost
	cursor := ""

	for len(posts) < limit {
		page, err := s.fetchPage(ctx, handle, cursor)
		if err != nil {
			return nil, err
		}

		for _, tweet := range page.Tweets {
			createdAt, err := parseTweetTime(tweet.CreatedAt)
			if err != nil {
				s.logger.WithError(err).WithField("tweet_id", tweet.ID).Warn("unparseable tweet timestamp, skipping")
				continue
			}
			author := tweet.Author.UserName
			if author == "" {
				author = handle
			}
			posts = append(posts, contracts.RawPost{
				ID:           tweet.ID,
				AuthorHandle: author,
				Text:         tweet.Text,
				CreatedAt:    createdAt,
				URL:          tweet.URL,
			})
			if len(posts) == limit {
				break
			}
		}

		if !page.HasNextPage || page.NextCursor == "" || len(page.Tweets) == 0 {
			break
		}
		cursor = page.NextCursor
	}

	s.logger.WithFields(map[string]interface{}{
		"handle": handle,
		"posts":  len(posts),
	}).Debug("fetched posts")
	return posts, nil
}

func (s *TwitterAPISource) fetchPage(ctx context.Context, handle, cursor string) (*tweetPage, error) {
	query := url.Values{}
	query.Set("userName", handle)
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	endpoint := fmt.Sprintf("%s/twitter/user/last_tweets?%s", s.baseURL, query.Encode())

	resp, err := s.http.GetWithHeaders(ctx, endpoint, map[string]string{
		"X-API-Key": s.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("post fetch failed for %s: %w", handle, err)
	}
	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("post source returned status %d for %s", resp.StatusCode, handle)
	}

	var envelope struct {
		Data tweetPage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("post source decode failed: %w", err)
	}
	return &envelope.Data, nil
}

// parseTweetTime accepts the classic Twitter layout with an RFC3339
// fallback.
func parseTweetTime(value string) (time.Time, error) {
	if t, err := time.Parse(twitterTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

var _ contracts.PostSource = (*TwitterAPISource)(nil)
