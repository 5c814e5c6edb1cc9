package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// outboundRequest models of an outbound API call.
type outboundRequest struct {
	// method specifies the HTTP method to be used.
	method string
	// path specifies a path (relative to the root of the API) to be used.
	path string
	// queryParams optionally specifies any URL query parameters to be used.
	queryParams map[string]string
	// headers optionally specifies any miscellaneous HTTP headers to be used.
	headers map[string]string
	// reqBodyObj optionally provides an object that can be marshaled to create
	// the body of the HTTP request.
	reqBodyObj interface{}
	// successCodes specifies what HTTP response codes should indicate a
	// successful API call. When empty, any 2xx code is accepted.
	successCodes []int
	// decode optionally consumes the raw HTTP response body. It is used instead
	// of a plain unmarshal because the backend is loose about response shapes.
	decode func([]byte) error
}

// baseClient provides "API machinery" used by all the specialized API clients.
// Its various functions remove the tedium from common API-related operations
// like attaching the bearer token, encoding request bodies, interpretting
// response codes, decoding responses bodies, and more.
type baseClient struct {
	apiAddress string
	tokens     TokenSource
	httpClient *http.Client
}

func newBaseClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) *baseClient {
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &baseClient{
		apiAddress: strings.TrimSuffix(apiAddress, "/"),
		tokens:     tokens,
		httpClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: allowInsecure, // nolint: gosec
				},
			},
		},
	}
}

// executeRequest accepts one argument-- an outboundRequest-- that models all
// aspects of a single API call in a succinct fashion. Based on this
// information, this function prepares and executes an HTTP request, interprets
// the HTTP response code and hands the response body to the request's decode
// function.
func (b *baseClient) executeRequest(
	ctx context.Context,
	req outboundRequest,
) error {
	resp, err := b.submitRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if req.decode == nil {
		return nil
	}
	respBodyBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "error reading response body")
	}
	if err := req.decode(respBodyBytes); err != nil {
		return errors.Wrap(err, "error unmarshaling response body")
	}
	return nil
}

// submitRequest prepares and executes the HTTP request described by req and
// returns the HTTP response. The bearer token is looked up at send time so
// that a token stored a moment ago is the one that goes out on the wire.
func (b *baseClient) submitRequest(
	ctx context.Context,
	req outboundRequest,
) (*http.Response, error) {
	var reqBodyReader io.Reader
	if req.reqBodyObj != nil {
		switch rb := req.reqBodyObj.(type) {
		case []byte:
			reqBodyReader = bytes.NewBuffer(rb)
		default:
			reqBodyBytes, err := json.Marshal(req.reqBodyObj)
			if err != nil {
				return nil, errors.Wrap(err, "error marshaling request body")
			}
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	r, err := http.NewRequestWithContext(
		ctx,
		req.method,
		fmt.Sprintf("%s/%s", b.apiAddress, strings.TrimPrefix(req.path, "/")),
		reqBodyReader,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			req.method,
			req.path,
		)
	}
	if len(req.queryParams) > 0 {
		q := r.URL.Query()
		for k, v := range req.queryParams {
			q.Set(k, v)
		}
		r.URL.RawQuery = q.Encode()
	}
	if reqBodyReader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.headers {
		r.Header.Add(k, v)
	}
	if err := b.authorize(ctx, r); err != nil {
		return nil, err
	}

	resp, err := b.httpClient.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "error invoking API")
	}

	if !isSuccess(resp.StatusCode, req.successCodes) {
		defer resp.Body.Close()
		bodyBytes, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "error reading error response body")
		}
		return nil, newErrFromResponse(resp.StatusCode, bodyBytes)
	}
	return resp, nil
}

// authorize attaches "Authorization: Bearer <token>" when the token source
// currently holds a token and leaves the request untouched otherwise.
func (b *baseClient) authorize(ctx context.Context, r *http.Request) error {
	token, err := b.tokens.Token(ctx)
	if err != nil {
		return errors.Wrap(err, "error reading bearer token")
	}
	if token == "" {
		return nil
	}
	(&oauth2.Token{AccessToken: token}).SetAuthHeader(r)
	return nil
}

func isSuccess(statusCode int, successCodes []int) bool {
	if len(successCodes) == 0 {
		return statusCode >= 200 && statusCode < 300
	}
	for _, code := range successCodes {
		if statusCode == code {
			return true
		}
	}
	return false
}
