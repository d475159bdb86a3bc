package mark

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	TokenField  = "csrfmiddlewaretoken"
	TokenHeader = "X-CSRFToken"
)

// Toggler flips the mark behind a bound URL. The server decides whether the mark is created or
// deleted.
type Toggler interface {
	Toggle(ctx context.Context, action string, token string) (Response, error)
}

type HTTPToggler struct {
	client *http.Client
}

func NewHTTPToggler(client *http.Client) *HTTPToggler {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPToggler{client: client}
}

func (t *HTTPToggler) Toggle(ctx context.Context, action string, token string) (Response, error) {
	form := url.Values{}
	form.Set(TokenField, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, action, strings.NewReader(form.Encode()))
	if err != nil {
		log.Errorf("Failed to create mark request: %v", err)
		return Response{}, err
	}
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set(TokenHeader, token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		log.Errorf("Mark request to %s failed: %v", action, err)
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		log.Error(err)
		return Response{}, err
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType != "application/json" {
		err := fmt.Errorf("%w: got %q", ErrNotJSON, contentType)
		log.Error(err)
		return Response{}, err
	}

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Errorf("Failed to decode mark response: %v", err)
		return Response{}, err
	}
	log.Debugf("mark response from %s: %+v", action, body)

	return body, nil
}
