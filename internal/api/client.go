package api

import (
	"context"
	"encoding/json"
	"time"

	"linewar-tracker/internal/config"
	"linewar-tracker/internal/constants"

	"github.com/valyala/fasthttp"
)

// HTTPClient is the fasthttp client shared by every provider-facing component.
type HTTPClient struct {
	client  *fasthttp.Client
	timeout time.Duration
}

func NewHTTPClient(cfg *config.Config) *HTTPClient {
	return &HTTPClient{
		client: &fasthttp.Client{
			Name:                constants.UserAgent,
			MaxConnsPerHost:     16,
			ReadTimeout:         cfg.HTTPTimeout,
			WriteTimeout:        cfg.HTTPTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		timeout: cfg.HTTPTimeout,
	}
}

// do sends req and fills resp. The context deadline wins over the client
// timeout; a started request runs until it completes or times out. Error URLs
// omit the query since it may carry the API key.
func (c *HTTPClient) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		return &TransportError{URL: string(req.URI().Host()) + string(req.URI().Path()), Err: err}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return &StatusError{URL: string(req.URI().Path()), StatusCode: resp.StatusCode()}
	}
	return nil
}

func doRequest[T any](ctx context.Context, client *HTTPClient, req *fasthttp.Request) (*T, error) {
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := client.do(ctx, req, resp); err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &ParseError{What: "response body", Err: err}
	}
	return &result, nil
}

type queryArg struct {
	key   string
	value string
}

// newGetRequest builds a GET with query args in the given order. Callers
// release it with fasthttp.ReleaseRequest.
func newGetRequest(url string, query ...queryArg) *fasthttp.Request {
	req := fasthttp.AcquireRequest()
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	args := req.URI().QueryArgs()
	for _, q := range query {
		args.Add(q.key, q.value)
	}
	return req
}
