package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"stockbot/internal/components/telemetry/telemetrytest"

	"github.com/stretchr/testify/require"
)

var testCredentials = Credentials{
	BearerToken:       "bearer",
	ApiKey:            "consumer-key",
	ApiKeySecret:      "consumer-secret",
	AccessToken:       "access-token",
	AccessTokenSecret: "access-secret",
}

type fakeApi struct {
	mutex sync.Mutex
	texts []string
	auth  []string
	// fail makes the api reject any tweet containing this text.
	fail string
}

func (f *fakeApi) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/2/tweets" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var body createTweetRequest
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mutex.Lock()
	f.texts = append(f.texts, body.Text)
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	f.mutex.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.fail != "" && strings.Contains(body.Text, f.fail) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"title":"Forbidden","detail":"You are not allowed to create a Tweet with duplicate content.","status":403}`))
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"data":{"id":"1445880548472328192","text":"ok"}}`))
}

func TestCredentialsValidate(t *testing.T) {
	require.NoError(t, testCredentials.Validate())

	err := Credentials{BearerToken: "bearer", ApiKey: "key"}.Validate()
	require.EqualError(t, err, "missing credentials: api_key_secret, access_token, access_token_secret")
}

func TestPost(t *testing.T) {
	api := &fakeApi{}
	server := httptest.NewServer(api)
	defer server.Close()

	tel := telemetrytest.NewRecorder()
	client, err := NewClient(testCredentials, tel, ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.Post(context.Background(), "AMC Price 📈🔥\nClose: 4.84")
	require.NoError(t, err)

	require.Equal(t, []string{"AMC Price 📈🔥\nClose: 4.84"}, api.texts)
	require.Len(t, api.auth, 1)
	require.True(t, strings.HasPrefix(api.auth[0], "OAuth "))
	require.Contains(t, api.auth[0], `oauth_consumer_key="consumer-key"`)
	require.Contains(t, api.auth[0], `oauth_token="access-token"`)
	require.Empty(t, tel.Diagnostics())
}

func TestPostRejected(t *testing.T) {
	api := &fakeApi{fail: "duplicate"}
	server := httptest.NewServer(api)
	defer server.Close()

	client, err := NewClient(testCredentials, telemetrytest.NewRecorder(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.Post(context.Background(), "duplicate")
	require.ErrorContains(t, err, "status 403")
	require.ErrorContains(t, err, "duplicate content")
}

func TestNewClientMissingCredentials(t *testing.T) {
	_, err := NewClient(Credentials{}, telemetrytest.NewRecorder(), ClientOptions{})
	require.Error(t, err)
}

type failingPoster struct {
	posted []string
}

func (p *failingPoster) Post(_ context.Context, text string) error {
	if text == "second" {
		return errors.New("rate limited")
	}
	p.posted = append(p.posted, text)
	return nil
}

func TestPostAll(t *testing.T) {
	tel := telemetrytest.NewRecorder()
	poster := &failingPoster{}

	err := PostAll(context.Background(), poster, tel, []string{"first", "second", "third"})
	require.ErrorContains(t, err, "rate limited")
	require.Equal(t, []string{"first", "third"}, poster.posted)

	broken := tel.Reports(telemetrytest.KindBroken)
	require.Len(t, broken, 1)
	require.Equal(t, report_client_post, broken[0].Id)
}

func TestDryRun(t *testing.T) {
	var out bytes.Buffer
	err := PostAll(context.Background(), NewDryRun(&out), telemetrytest.NewRecorder(), []string{
		"AMC Price 📈🔥",
		"Cost to Borrow: 243.94%",
	})
	require.NoError(t, err)
	require.Equal(
		t,
		"len(message) = 12\n'AMC Price 📈🔥'\n\nlen(message) = 23\n'Cost to Borrow: 243.94%'\n\n",
		out.String(),
	)
}
