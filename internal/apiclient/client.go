package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет http.Client (таймауты, транспорт в тестах)
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithLogger логгер для отладочных записей о запросах
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// Client обёртка над http.Client с фиксированным базовым URL.
// Одна попытка на запрос: без повторов и без собственного таймаута.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        *slog.Logger
}

// Request описывает один исходящий запрос
type Request struct {
	Method string
	Path   string
	// Form отправляется как multipart/form-data, поля в порядке добавления
	Form []Field
}

// Field поле multipart формы
type Field struct {
	Name  string
	Value string
}

// New создаёт Client для базового URL
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("apiclient: base URL is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "apiclient: invalid base URL")
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{},
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL адрес бэкенда
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do выполняет запрос.
// Не-2xx превращается в *Error с KindRequestFailed, текст тела - сообщение ошибки.
// 2xx с JSON возвращает тело, иначе пустой объект "{}".
func (c *Client) Do(ctx context.Context, req *Request) (json.RawMessage, error) {
	const op = "apiclient.Do"

	if req == nil {
		return nil, errors.New("apiclient: request is nil")
	}
	if req.Method == "" {
		return nil, errors.New("apiclient: HTTP method is required")
	}

	fullURL, err := c.buildURL(req.Path)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeForm(req.Form)
	if err != nil {
		return nil, errors.Wrap(err, "apiclient: encode form")
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, errors.Wrap(err, "apiclient: build request")
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	logger := c.log.With(
		slog.String("op", op),
		slog.String("method", req.Method),
		slog.String("url", fullURL),
		slog.String("request_id", requestID),
	)
	logger.Debug("sending request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "send request", Err: errors.WithStack(err)}
	}
	defer closeBody(resp.Body)

	logger.Debug("response received", slog.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			text = nil
		}
		return nil, requestFailed(resp.StatusCode, string(text))
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		return json.RawMessage("{}"), nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, StatusCode: resp.StatusCode, Message: "read response body", Err: err}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(data) {
		return nil, &Error{Kind: KindDecode, StatusCode: resp.StatusCode, Message: "response body is not valid JSON"}
	}
	return json.RawMessage(data), nil
}

func (c *Client) buildURL(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", errors.Wrapf(err, "apiclient: invalid path %q", path)
	}
	base := *c.baseURL
	// базовый URL может содержать префикс пути (http://host/api)
	base.Path = strings.TrimRight(c.baseURL.Path, "/") + ref.Path
	base.RawPath = ""
	if ref.RawPath != "" {
		base.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + ref.RawPath
	}
	return base.String(), nil
}

func encodeForm(fields []Field) (io.Reader, string, error) {
	if len(fields) == 0 {
		return http.NoBody, "", nil
	}
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/json")
	}
	return mediaType == "application/json"
}

func closeBody(rc io.ReadCloser) {
	if rc != nil {
		_ = rc.Close()
	}
}
