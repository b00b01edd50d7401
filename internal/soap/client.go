package soap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Outcome 一次SOAP调用的传输层结果
type Outcome int

const (
	// OutcomeSuccess 收到可解析的应答元素
	OutcomeSuccess Outcome = iota
	// OutcomeSOAPFault 对端返回SOAP故障
	OutcomeSOAPFault
	// OutcomeHTTPError 非2xx且不是SOAP故障
	OutcomeHTTPError
	// OutcomeException 网络、超时、取消或报文无法解析
	OutcomeException
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSOAPFault:
		return "soap_fault"
	case OutcomeHTTPError:
		return "http_error"
	case OutcomeException:
		return "exception"
	default:
		return "unknown"
	}
}

// ClientConfig SOAP客户端配置
type ClientConfig struct {
	URL          string
	UserAgent    string
	MaxIdleConns int
	// MaxResponseBytes 应答体上限，超出部分被截断并视为异常
	MaxResponseBytes int64
	// HTTPClient 非空时直接使用，测试中注入 httptest 客户端
	HTTPClient *http.Client
}

// DefaultClientConfig 默认客户端配置
func DefaultClientConfig(url string) *ClientConfig {
	return &ClientConfig{
		URL:              url,
		UserAgent:        "ochp-roaming",
		MaxIdleConns:     16,
		MaxResponseBytes: 10 << 20,
	}
}

// Result 调用结果；Outcome 决定哪些字段有效
type Result struct {
	Outcome    Outcome
	Envelope   *Envelope
	HTTPStatus int
	RawBody    string
	Err        error
	Runtime    time.Duration
}

// Fault 对端故障，仅 OutcomeSOAPFault 时非空
func (r *Result) Fault() *Fault {
	if r.Envelope == nil {
		return nil
	}
	return r.Envelope.Fault
}

// Client SOAP 1.1 HTTP客户端，可被多个goroutine并发使用
type Client struct {
	config *ClientConfig
	http   *http.Client
}

// NewClient 创建客户端
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil || config.URL == "" {
		return nil, errors.New("soap: client URL must be set")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        config.MaxIdleConns,
				MaxIdleConnsPerHost: config.MaxIdleConns,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{config: config, http: httpClient}, nil
}

// URL 服务端地址
func (c *Client) URL() string {
	return c.config.URL
}

// Query 发送信封并按四种结果分类，不返回错误；超时与取消归入 OutcomeException
func (c *Client) Query(ctx context.Context, action string, envelope []byte, timeout time.Duration) *Result {
	start := time.Now()
	result := c.query(ctx, action, envelope, timeout)
	result.Runtime = time.Since(start)
	return result
}

func (c *Client) query(ctx context.Context, action string, envelope []byte, timeout time.Duration) *Result {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(envelope))
	if err != nil {
		return &Result{Outcome: OutcomeException, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("SOAPAction", `"`+action+`"`)
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Result{Outcome: OutcomeException, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if c.config.MaxResponseBytes > 0 {
		reader = io.LimitReader(resp.Body, c.config.MaxResponseBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return &Result{Outcome: OutcomeException, HTTPStatus: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if c.config.MaxResponseBytes > 0 && int64(len(body)) > c.config.MaxResponseBytes {
		return &Result{
			Outcome:    OutcomeException,
			HTTPStatus: resp.StatusCode,
			Err:        fmt.Errorf("response exceeds %d bytes", c.config.MaxResponseBytes),
		}
	}

	return classify(resp.StatusCode, body)
}

func classify(status int, body []byte) *Result {
	result := &Result{HTTPStatus: status, RawBody: string(body)}
	envelope, err := Unmarshal(body)

	if status < 200 || status >= 300 {
		// SOAP 1.1 通过 HTTP 500 返回故障
		if err == nil && envelope.IsFault() {
			result.Outcome = OutcomeSOAPFault
			result.Envelope = envelope
			return result
		}
		result.Outcome = OutcomeHTTPError
		result.Err = fmt.Errorf("unexpected status code %d", status)
		return result
	}

	switch {
	case err != nil:
		result.Outcome = OutcomeException
		result.Err = fmt.Errorf("invalid response envelope: %w", err)
	case envelope.IsFault():
		result.Outcome = OutcomeSOAPFault
		result.Envelope = envelope
	default:
		result.Outcome = OutcomeSuccess
		result.Envelope = envelope
	}
	return result
}

// SOAPActionFromHeader 去掉SOAPAction头的引号
func SOAPActionFromHeader(value string) string {
	return strings.Trim(strings.TrimSpace(value), `"`)
}
