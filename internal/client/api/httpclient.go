// Package api implements the HTTP client for the learning backend: thin
// wrappers over the /api/auth, /api/progress and /api/speech endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"letterpal/internal/client/models"
	"letterpal/internal/common"
)

// HTTPClient talks to the backend over plain HTTP. It is not safe for
// concurrent use; the CLI drives it from a single goroutine.
type HTTPClient struct {
	baseURL        string
	httpClient     *http.Client
	accessToken    string
	onUnauthorized func()
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error { return nil }

func (c *HTTPClient) SetToken(token string) { c.accessToken = token }

func (c *HTTPClient) OnUnauthorized(fn func()) { c.onUnauthorized = fn }

// do sends the request with the bearer token attached and decodes a JSON
// response body into out (when out is non-nil). A 401 triggers the
// unauthorized handler unless isLogin is set.
func (c *HTTPClient) do(ctx context.Context, method, path string, contentType string, body io.Reader, out any, isLogin bool) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if isLogin {
			return common.ErrInvalidCredentials
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return common.ErrUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", common.ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 300:
		return &StatusError{Status: resp.StatusCode, Detail: errorDetail(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// StatusError is a non-401, non-5xx rejection from the backend, carrying the
// body's detail message when one was present.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request rejected: status %d", e.Status)
	}
	return fmt.Sprintf("request rejected: %s", e.Detail)
}

// errorDetail extracts the backend's {"detail": ...} message, if any.
func errorDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(b), out, false)
}

func (c *HTTPClient) Register(ctx context.Context, nickname, password string) error {
	in := map[string]string{"nickname": nickname, "password": password}

	err := c.postJSON(ctx, "/api/auth/register", in, nil)

	var se *StatusError
	if errors.As(err, &se) && se.Status == http.StatusBadRequest {
		return common.ErrNicknameTaken
	}
	return err
}

// Login submits credentials form-encoded, as the backend's OAuth2 form flow
// expects, and installs the returned access token on the client.
func (c *HTTPClient) Login(ctx context.Context, nickname, password string) (string, error) {
	form := url.Values{}
	form.Set("username", nickname)
	form.Set("password", password)

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	err := c.do(ctx, http.MethodPost, "/api/auth/login", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), &out, true)
	if err != nil {
		return "", err
	}

	c.accessToken = out.AccessToken
	return out.AccessToken, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", "", nil, &user, false); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateProgress(ctx context.Context, letterID, stage, score int) error {
	in := map[string]int{"letter_id": letterID, "stage": stage, "score": score}
	return c.postJSON(ctx, "/api/progress/update", in, nil)
}

func (c *HTTPClient) Checkin(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/progress/checkin", "", nil, nil, false)
}

func (c *HTTPClient) Progress(ctx context.Context) ([]models.RemoteProgress, error) {
	var out []models.RemoteProgress
	if err := c.do(ctx, http.MethodGet, "/api/progress/", "", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Checkins(ctx context.Context) ([]models.CheckinRecord, error) {
	var out []models.CheckinRecord
	if err := c.do(ctx, http.MethodGet, "/api/progress/checkins", "", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.Stats, error) {
	var out models.Stats
	if err := c.do(ctx, http.MethodGet, "/api/progress/stats", "", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// multipartBody builds a multipart form with the letter, an audio file part,
// and optional extra string fields.
func multipartBody(letter string, audio io.Reader, filename string, extra map[string]string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("letter", letter); err != nil {
		return nil, "", err
	}
	for k, v := range extra {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("audio", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *HTTPClient) EvaluateSpeech(ctx context.Context, letter string, audio io.Reader, filename string) (*models.SpeechEvaluation, error) {
	body, contentType, err := multipartBody(letter, audio, filename, nil)
	if err != nil {
		return nil, err
	}

	var out models.SpeechEvaluation
	if err := c.do(ctx, http.MethodPost, "/api/speech/evaluate", contentType, body, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SaveRecording(ctx context.Context, letter string, audio io.Reader, filename string, score int) error {
	body, contentType, err := multipartBody(letter, audio, filename, map[string]string{
		"score": strconv.Itoa(score),
	})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/speech/save", contentType, body, nil, false)
}
