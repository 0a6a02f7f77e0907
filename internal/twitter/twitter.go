// Package twitter posts messages to a Twitter/X account through the v2 API.
package twitter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stockbot/internal/components/assert"
	"stockbot/internal/components/telemetry"

	"github.com/dghubble/oauth1"
	"github.com/go-resty/resty/v2"
)

const (
	report_client_post = "client.post"
)

const DefaultBaseUrl = "https://api.twitter.com"

// Credentials are the keys of one account, as found in the developer portal.
type Credentials struct {
	BearerToken       string `json:"bearer_token"`
	ApiKey            string `json:"api_key"`
	ApiKeySecret      string `json:"api_key_secret"`
	AccessToken       string `json:"access_token"`
	AccessTokenSecret string `json:"access_token_secret"`
}

// Validate checks the keys needed to post on behalf of a user, the bearer
// token alone is app-only and cannot post.
func (c Credentials) Validate() error {
	var missing []string
	if c.ApiKey == "" {
		missing = append(missing, "api_key")
	}
	if c.ApiKeySecret == "" {
		missing = append(missing, "api_key_secret")
	}
	if c.AccessToken == "" {
		missing = append(missing, "access_token")
	}
	if c.AccessTokenSecret == "" {
		missing = append(missing, "access_token_secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Poster publishes a single message.
type Poster interface {
	Post(ctx context.Context, text string) error
}

type Client struct {
	http *resty.Client
	tel  telemetry.API
}

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string
	Output  telemetry.InstrumentOutput
}

func NewClient(creds Credentials, tel telemetry.API, opts ClientOptions) (Client, error) {
	assert.NotNil(tel)

	err := creds.Validate()
	if err != nil {
		return Client{}, err
	}
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}

	tel = telemetry.NewScopedAPI("twitter", tel)

	config := oauth1.NewConfig(creds.ApiKey, creds.ApiKeySecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)

	httpClient := resty.NewWithClient(config.Client(oauth1.NoContext, token))
	httpClient.SetBaseURL(strings.TrimSuffix(opts.BaseUrl, "/"))
	httpClient.SetTimeout(time.Second * 30)
	httpClient.SetRetryCount(0)
	telemetry.InstrumentResty(httpClient, tel, opts.Output)

	return Client{http: httpClient, tel: tel}, nil
}

type createTweetRequest struct {
	Text string `json:"text"`
}

type createTweetResponse struct {
	Data struct {
		Id   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

func (c Client) Post(ctx context.Context, text string) error {
	var created createTweetResponse
	var failed apiError

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(createTweetRequest{Text: text}).
		SetResult(&created).
		SetError(&failed).
		Post("/2/tweets")
	if err != nil {
		return fmt.Errorf("create tweet: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf(
			"create tweet: status %d: %s: %s",
			res.StatusCode(), failed.Title, failed.Detail,
		)
	}

	c.tel.ReportDebug("posted", created.Data.Id)
	return nil
}

// PostAll posts every message in order. A failed post is reported and the
// rest are still attempted, nothing is retried.
func PostAll(ctx context.Context, poster Poster, tel telemetry.API, messages []string) error {
	var errs []error
	for _, message := range messages {
		err := poster.Post(ctx, message)
		if err != nil {
			tel.ReportBroken(report_client_post, err, len([]rune(message)), message)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
