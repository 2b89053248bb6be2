package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return &Client{
		storeID:       "teststore",
		storePassword: "testpass",
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: 2 * time.Second},
	}
}

func TestInitiateSession(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, sessionPath, r.URL.Path)
		require.NoError(t, r.ParseForm())

		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "SUCCESS",
			"sessionkey": "ABCDEF0123456789",
			"GatewayPageURL": "https://sandbox.sslcommerz.com/EasyCheckOut/testcde"
		}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	session, err := client.InitiateSession(context.Background(), SessionRequest{
		TotalAmount:     1000,
		Currency:        "BDT",
		TranID:          "AABBCCDDEEFF00112233445566778899",
		SuccessURL:      "https://api.example.com/v1/payment/success?tranId=X",
		FailURL:         "https://api.example.com/v1/payment/fail?tranId=X",
		CancelURL:       "https://api.example.com/v1/payment/cancel?tranId=X",
		ShippingMethod:  "Courier",
		ProductName:     "Leather Wallet",
		ProductCategory: "Accessories",
		ProductProfile:  "general",
		CustomerName:    "Rahim Uddin",
		CustomerPhone:   "01712345678",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, session.Status)
	assert.Equal(t, "ABCDEF0123456789", session.SessionKey)
	assert.Equal(t, "https://sandbox.sslcommerz.com/EasyCheckOut/testcde", session.GatewayPageURL)

	assert.Equal(t, "teststore", gotForm["store_id"])
	assert.Equal(t, "testpass", gotForm["store_passwd"])
	assert.Equal(t, "1000.00", gotForm["total_amount"])
	assert.Equal(t, "BDT", gotForm["currency"])
	assert.Equal(t, "AABBCCDDEEFF00112233445566778899", gotForm["tran_id"])
	assert.Equal(t, "Rahim Uddin", gotForm["cus_name"])
	assert.Equal(t, "01712345678", gotForm["cus_phone"])
}

func TestInitiateSessionFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "FAILED", "failedreason": "invalid store"}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	session, err := client.InitiateSession(context.Background(), SessionRequest{TranID: "X"})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, session.Status)
	assert.Equal(t, "invalid store", session.FailedReason)
}

func TestQueryTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, queryPath, r.URL.Path)
		require.Equal(t, "AABBCC", r.URL.Query().Get("tran_id"))
		require.Equal(t, "teststore", r.URL.Query().Get("store_id"))
		require.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"APIConnect": "DONE",
			"no_of_trans_found": 1,
			"element": [{"status": "VALID", "amount": "1000.00"}]
		}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	result, err := client.QueryTransaction(context.Background(), "AABBCC")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Found)
	assert.Equal(t, StatusValid, result.Status)
	assert.Equal(t, float64(1000), result.Amount)
}

func TestQueryTransactionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"APIConnect": "DONE", "no_of_trans_found": 0, "element": []}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	result, err := client.QueryTransaction(context.Background(), "MISSING")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Found)
	assert.Empty(t, result.Status)
}

func TestQueryTransactionRetriesOnce(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"no_of_trans_found": 1, "element": [{"status": "VALID", "amount": "400.00"}]}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	result, err := client.QueryTransaction(context.Background(), "RETRY")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, float64(400), result.Amount)
}

func TestQueryTransactionGivesUpAfterRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.QueryTransaction(context.Background(), "DOWN")
	assert.Error(t, err)
}

func TestNewClientSelectsEndpoints(t *testing.T) {
	sandbox := NewClient("s", "p", false)
	assert.Equal(t, sandboxBaseURL, sandbox.baseURL)

	live := NewClient("s", "p", true)
	assert.Equal(t, liveBaseURL, live.baseURL)
}
