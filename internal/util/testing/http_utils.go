package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResponse carries the recorded HTTP response of a test request.
type TestResponse struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// RequestOptions describes a single test request. Body may be a struct
// (JSON-marshaled), a raw string, or nil. AuthToken is sent verbatim as
// the Authorization header, so callers include the "Bearer " prefix.
type RequestOptions struct {
	Method         string
	URL            string
	Body           any
	AuthToken      string
	ExpectedStatus int
}

// MakeRequest executes a request against the router and asserts the
// response status matches ExpectedStatus.
func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) *TestResponse {
	t.Helper()

	var bodyReader *bytes.Reader

	switch body := options.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(body))
	default:
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "Should be able to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	request, err := http.NewRequest(options.Method, options.URL, bodyReader)
	require.NoError(t, err, "Should be able to create request")

	request.Header.Set("Content-Type", "application/json")
	if options.AuthToken != "" {
		request.Header.Set("Authorization", options.AuthToken)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(
		t,
		options.ExpectedStatus,
		recorder.Code,
		"Unexpected status for %s %s: %s",
		options.Method,
		options.URL,
		recorder.Body.String(),
	)

	return &TestResponse{
		Code:    recorder.Code,
		Body:    recorder.Body.Bytes(),
		Headers: recorder.Header(),
	}
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPut,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeDeleteRequest(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodDelete,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

// MakeGetRequestAndUnmarshal performs a GET and decodes the JSON
// response into out.
func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	expectedStatus int,
	out any,
) *TestResponse {
	t.Helper()

	response := MakeGetRequest(t, router, url, authToken, expectedStatus)
	require.NoError(t, json.Unmarshal(response.Body, out), "Should be able to unmarshal response")

	return response
}

// MakePostRequestAndUnmarshal performs a POST and decodes the JSON
// response into out.
func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	body any,
	expectedStatus int,
	out any,
) *TestResponse {
	t.Helper()

	response := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	require.NoError(t, json.Unmarshal(response.Body, out), "Should be able to unmarshal response")

	return response
}
