package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tokenized/voting-contract/internal/broadcaster"
	"github.com/tokenized/voting-contract/internal/contract"
	"github.com/tokenized/voting-contract/internal/platform/node"

	"github.com/gorilla/websocket"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
)

type Config struct {
	URL     string        `default:"http://localhost:8080" envconfig:"CLIENT_URL"`
	Timeout time.Duration `default:"10s" envconfig:"CLIENT_TIMEOUT"`
	LogFile string        `envconfig:"CLIENT_LOG_FILE_PATH"`
}

// Client calls a voting contract host.
type Client struct {
	Config Config
	http   *http.Client
}

// Reply is the host's answer to a cast. Status is the HTTP status code.
type Reply struct {
	Status   int
	Response contract.Response
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("CLIENT", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func New(config Config) *Client {
	return &Client{
		Config: config,
		http:   &http.Client{Timeout: config.Timeout},
	}
}

// Context returns a context with logging configured for the client.
func (c *Client) Context() context.Context {
	return node.ContextWithLogger(context.Background(), false, true, c.Config.LogFile)
}

// Payload returns the cast_and_tally payload for a vote.
func Payload(voterID, color string) ([]byte, error) {
	return json.Marshal(contract.CastAndTally{
		VoterID: voterID,
		Color:   color,
	})
}

// Envelope returns the {"method", "payload"} request for a vote.
func Envelope(voterID, color string) ([]byte, error) {
	payload, err := Payload(voterID, color)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(struct {
		Method  string          `json:"method"`
		Payload json.RawMessage `json:"payload"`
	}{
		Method:  contract.MethodCastAndTally,
		Payload: payload,
	}, "", "  ")
}

// Cast sends a vote. Contract errors are returned in the reply, not as an
// error.
func (c *Client) Cast(ctx context.Context, voterID, color string) (*Reply, error) {
	payload, err := Payload(voterID, color)
	if err != nil {
		return nil, errors.Wrap(err, "payload")
	}

	endpoint := strings.TrimRight(c.Config.URL, "/") + "/api/" + contract.MethodCastAndTally
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	logger.Verbose(ctx, "Casting vote for %s as '%s' at %s", color, voterID, endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "post")
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read reply")
	}

	reply := &Reply{Status: resp.StatusCode}
	if err := json.Unmarshal(body, &reply.Response); err != nil {
		return nil, errors.Wrapf(err, "decode reply (%d)", resp.StatusCode)
	}

	return reply, nil
}

// Watch streams updates from the live feed to fn until ctx is done, the
// connection fails or fn returns an error. Updates older than one already
// passed to fn are skipped.
func (c *Client) Watch(ctx context.Context, fn func(broadcaster.Update) error) error {
	u, err := url.Parse(c.Config.URL)
	if err != nil {
		return errors.Wrap(err, "parse url")
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/ws"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "dial")
	}
	defer conn.Close()

	logger.Info(ctx, "Watching %s", u.String())

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	var last broadcaster.Update
	seen := false
	for {
		var update broadcaster.Update
		if err := conn.ReadJSON(&update); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "read update")
		}

		if seen && !update.Supersedes(last) {
			logger.Verbose(ctx, "Skipping stale update with %d votes", update.Votes)
			continue
		}
		last = update
		seen = true

		if err := fn(update); err != nil {
			return err
		}
	}
}
