package mercadolivre

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("mercadolivre config invalid")
	ErrAuthFailed      = errors.New("mercadolivre auth failed")
	ErrRequestFailed   = errors.New("mercadolivre request failed")
	ErrResponseInvalid = errors.New("mercadolivre response invalid")
	ErrSellerNotFound  = errors.New("mercadolivre seller not found")
)

const (
	defaultBaseURL = "https://api.mercadolibre.com"
	defaultSiteID  = "MLB"
	defaultTimeout = 10 * time.Second
	defaultLimit   = 12

	// tokenExpirySlack 在官方有效期基础上提前刷新，避免边界过期
	tokenExpirySlack = 60 * time.Second
)

// Config Mercado Livre 接入配置
type Config struct {
	ClientID       string
	ClientSecret   string
	SellerID       string
	Nickname       string
	SiteID         string
	BaseURL        string
	TimeoutSeconds int
	Limit          int
}

// Client Mercado Livre API 客户端（令牌自管理，并发安全）
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient 创建客户端实例
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.ClientID) == "" || strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, fmt.Errorf("%w: client_id and client_secret are required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.BaseURL)); err != nil {
		return nil, fmt.Errorf("%w: base_url is invalid", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.SiteID) == "" {
		cfg.SiteID = defaultSiteID
	}
	if cfg.Limit <= 0 {
		cfg.Limit = defaultLimit
	}
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Connected 判断客户端当前是否持有有效令牌
func (c *Client) Connected() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != "" && time.Now().Before(c.tokenExpiry)
}

// InvalidateToken 主动作废当前令牌（强制刷新时使用）
func (c *Client) InvalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
	c.tokenExpiry = time.Time{}
}

// token 返回有效令牌，过期则通过 client_credentials 刷新
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	values := url.Values{}
	values.Set("grant_type", "client_credentials")
	values.Set("client_id", c.cfg.ClientID)
	values.Set("client_secret", c.cfg.ClientSecret)

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/oauth/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build token request failed", ErrAuthFailed)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request token failed: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read token response failed", ErrAuthFailed)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token status %d", ErrAuthFailed, resp.StatusCode)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode token response failed", ErrAuthFailed)
	}
	if strings.TrimSpace(parsed.AccessToken) == "" {
		return "", fmt.Errorf("%w: access_token is empty", ErrAuthFailed)
	}

	c.accessToken = parsed.AccessToken
	expiresIn := time.Duration(parsed.ExpiresIn) * time.Second
	if expiresIn <= tokenExpirySlack {
		expiresIn = tokenExpirySlack * 2
	}
	c.tokenExpiry = time.Now().Add(expiresIn - tokenExpirySlack)
	return c.accessToken, nil
}

// doGET 执行带令牌的 GET 请求，401/403 时刷新令牌重试一次
func (c *Client) doGET(ctx context.Context, endpoint string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.token(ctx)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.cfg.BaseURL, "/")+endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: build request failed", ErrRequestFailed)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: http request failed: %v", ErrRequestFailed, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read response failed", ErrRequestFailed)
		}

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			// 令牌失效，作废后重试一次
			c.InvalidateToken()
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
		}
		return body, nil
	}
	return nil, fmt.Errorf("%w: unauthorized after token refresh", ErrAuthFailed)
}

// searchResponse 站点搜索响应（仅取用到的字段）
type searchResponse struct {
	SellerID interface{} `json:"seller_id"`
	Paging   struct {
		Total int `json:"total"`
	} `json:"paging"`
	Results []Item `json:"results"`
}

// Item Mercado Livre 商品条目
type Item struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Price             float64 `json:"price"`
	OriginalPrice     float64 `json:"original_price"`
	Thumbnail         string  `json:"thumbnail"`
	Permalink         string  `json:"permalink"`
	Condition         string  `json:"condition"`
	AvailableQuantity int     `json:"available_quantity"`
	SoldQuantity      int     `json:"sold_quantity"`
	DomainID          string  `json:"domain_id"`
	Shipping          struct {
		FreeShipping bool `json:"free_shipping"`
	} `json:"shipping"`
	Pictures []ItemPicture `json:"pictures"`
}

// ItemPicture 商品图片
type ItemPicture struct {
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
}

// SearchSellerItems 拉取指定卖家的在售商品（按最新排序）
func (c *Client) SearchSellerItems(ctx context.Context, sellerID string) ([]Item, error) {
	sellerID = strings.TrimSpace(sellerID)
	if sellerID == "" {
		sellerID = strings.TrimSpace(c.cfg.SellerID)
	}
	if sellerID == "" {
		var err error
		sellerID, err = c.ResolveSellerByNickname(ctx, c.cfg.Nickname)
		if err != nil {
			return nil, err
		}
	}

	query := url.Values{}
	query.Set("seller_id", sellerID)
	query.Set("limit", fmt.Sprintf("%d", c.cfg.Limit))
	query.Set("sort", "recent")
	query.Set("status", "active")
	endpoint := fmt.Sprintf("/sites/%s/search?%s", url.PathEscape(c.cfg.SiteID), query.Encode())

	body, err := c.doGET(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode search response failed", ErrResponseInvalid)
	}
	return parsed.Results, nil
}

// ResolveSellerByNickname 根据店铺昵称解析卖家 ID
func (c *Client) ResolveSellerByNickname(ctx context.Context, nickname string) (string, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return "", fmt.Errorf("%w: seller_id and nickname are both empty", ErrConfigInvalid)
	}

	endpoint := fmt.Sprintf("/sites/%s/search?nickname=%s", url.PathEscape(c.cfg.SiteID), url.QueryEscape(nickname))
	body, err := c.doGET(ctx, endpoint)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Seller struct {
			ID json.Number `json:"id"`
		} `json:"seller"`
		Results []struct {
			Seller struct {
				ID json.Number `json:"id"`
			} `json:"seller"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode seller response failed", ErrResponseInvalid)
	}
	if id := parsed.Seller.ID.String(); id != "" && id != "0" {
		return id, nil
	}
	for _, result := range parsed.Results {
		if id := result.Seller.ID.String(); id != "" && id != "0" {
			return id, nil
		}
	}
	return "", ErrSellerNotFound
}
