package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/wems/internal/content"
	"github.com/wems/internal/storage"
)

const (
	defaultTimeout = 10 * time.Second
	pingTimeout    = time.Second
)

// Client 通过 HTTP 读写 JSON 文件服务中的分区。
// 与其它后端不同，读取失败时直接返回错误，由调用方决定回退。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option 配置 Client
type Option func(*Client)

// WithHTTPClient 替换默认的 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New 创建客户端，baseURL 形如 http://localhost:3001/api
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Kind 实现 storage.Backend
func (c *Client) Kind() storage.Kind {
	return storage.KindJSONFile
}

func (c *Client) sectionURL(name string) string {
	return c.baseURL + "/" + url.PathEscape(name)
}

// SaveSection 以 PUT 替换分区
func (c *Client) SaveSection(ctx context.Context, section content.Section, payload []byte) error {
	if !json.Valid(payload) {
		return fmt.Errorf("section %s: invalid json payload", section.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.sectionURL(section.Name), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("save %s: %w", section.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("save %s: %w", section.Name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save %s: status %d: %s", section.Name, resp.StatusCode, errorMessage(body))
	}
	if !gjson.GetBytes(body, "success").Bool() {
		return fmt.Errorf("save %s: server did not confirm", section.Name)
	}
	return nil
}

// LoadSection 以 GET 读取分区，404 时返回包装的 storage.ErrNotFound。
func (c *Client) LoadSection(ctx context.Context, section content.Section) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sectionURL(section.Name), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", section.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", section.Name, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("load %s: %w", section.Name, storage.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("load %s: status %d: %s", section.Name, resp.StatusCode, errorMessage(body))
	case !json.Valid(body):
		return nil, fmt.Errorf("load %s: invalid json response", section.Name)
	}
	return body, nil
}

// Ping 用 HEAD /data 探测服务是否在线，超时固定为 1 秒。
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/data", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("json server unreachable: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("json server unhealthy: " + resp.Status)
	}
	return nil
}

func errorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return msg.String()
	}
	return strings.TrimSpace(string(body))
}
