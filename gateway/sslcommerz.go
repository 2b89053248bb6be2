package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	sandboxBaseURL = "https://sandbox.sslcommerz.com"
	liveBaseURL    = "https://securepay.sslcommerz.com"

	sessionPath = "/gwprocess/v4/api.php"
	queryPath   = "/validator/api/merchantTransIDvalidationAPI.php"

	// SessionResponse.Status values reported by the session init API.
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"

	// Transaction status reported by the validation API for a completed
	// payment.
	StatusValid = "VALID"
)

// SessionRequest carries the fields SSLCommerz needs to open a hosted
// payment session.
type SessionRequest struct {
	TotalAmount      float64
	Currency         string
	TranID           string
	SuccessURL       string
	FailURL          string
	CancelURL        string
	ShippingMethod   string
	ProductName      string
	ProductCategory  string
	ProductProfile   string
	CustomerName     string
	CustomerEmail    string
	CustomerAddress  string
	CustomerCity     string
	CustomerState    string
	CustomerPostcode string
	CustomerCountry  string
	CustomerPhone    string
}

type SessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// TransactionResult is the answer to a transaction query by id. Found is
// the number of transactions the gateway matched; Status and Amount come
// from the first matched element.
type TransactionResult struct {
	Found  int
	Status string
	Amount float64
}

// Gateway is the payment gateway as seen by checkout and the callback
// handlers.
type Gateway interface {
	InitiateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error)
	QueryTransaction(ctx context.Context, tranID string) (*TransactionResult, error)
}

var _ Gateway = (*Client)(nil)

// Client talks to the SSLCommerz HTTP API. Construct it once at process
// start and pass it to the controllers that need it.
type Client struct {
	storeID       string
	storePassword string
	baseURL       string
	httpClient    *http.Client
}

func NewClient(storeID, storePassword string, live bool) *Client {
	baseURL := sandboxBaseURL
	if live {
		baseURL = liveBaseURL
	}
	return &Client{
		storeID:       storeID,
		storePassword: storePassword,
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

// InitiateSession asks the gateway to open a hosted payment session and
// returns either the session's redirect URL or the gateway's failure
// reason in the response body.
func (c *Client) InitiateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error) {
	form := url.Values{}
	form.Set("store_id", c.storeID)
	form.Set("store_passwd", c.storePassword)
	form.Set("total_amount", strconv.FormatFloat(req.TotalAmount, 'f', 2, 64))
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.TranID)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("shipping_method", req.ShippingMethod)
	form.Set("product_name", req.ProductName)
	form.Set("product_category", req.ProductCategory)
	form.Set("product_profile", req.ProductProfile)
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_email", req.CustomerEmail)
	form.Set("cus_add1", req.CustomerAddress)
	form.Set("cus_add2", req.CustomerAddress)
	form.Set("cus_city", req.CustomerCity)
	form.Set("cus_state", req.CustomerState)
	form.Set("cus_postcode", req.CustomerPostcode)
	form.Set("cus_country", req.CustomerCountry)
	form.Set("cus_phone", req.CustomerPhone)
	form.Set("cus_fax", req.CustomerPhone)
	form.Set("ship_name", req.CustomerName)
	form.Set("ship_add1", req.CustomerAddress)
	form.Set("ship_add2", req.CustomerAddress)
	form.Set("ship_city", req.CustomerCity)
	form.Set("ship_state", req.CustomerState)
	form.Set("ship_postcode", req.CustomerPostcode)
	form.Set("ship_country", req.CustomerCountry)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sessionPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sslcommerz session init: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sslcommerz session init: unexpected status %d", resp.StatusCode)
	}

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("sslcommerz session init: decode response: %w", err)
	}
	return &session, nil
}

type transactionQueryResponse struct {
	APIConnect   string `json:"APIConnect"`
	NoTransFound int    `json:"no_of_trans_found"`
	Element      []struct {
		Status string `json:"status"`
		Amount string `json:"amount"`
	} `json:"element"`
}

// QueryTransaction looks up a transaction by id via the validation API.
// The read is idempotent, so a transport failure is retried once.
func (c *Client) QueryTransaction(ctx context.Context, tranID string) (*TransactionResult, error) {
	query := url.Values{}
	query.Set("tran_id", tranID)
	query.Set("store_id", c.storeID)
	query.Set("store_passwd", c.storePassword)
	query.Set("format", "json")

	endpoint := c.baseURL + queryPath + "?" + query.Encode()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		result, err := c.queryOnce(ctx, endpoint)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("sslcommerz transaction query: %w", lastErr)
}

func (c *Client) queryOnce(ctx context.Context, endpoint string) (*TransactionResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body transactionQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	result := &TransactionResult{Found: body.NoTransFound}
	if len(body.Element) > 0 {
		result.Status = body.Element[0].Status
		// The validation API reports the amount as a decimal string.
		amount, err := strconv.ParseFloat(body.Element[0].Amount, 64)
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", body.Element[0].Amount, err)
		}
		result.Amount = amount
	}
	return result, nil
}
