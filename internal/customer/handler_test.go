package customer_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetgate/internal/customer"
	"fleetgate/pkg/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	store := customer.NewMemoryStore()
	tokens := customer.NewTokenService("test-key", time.Hour)
	service := customer.New(store, tokens, nil, "https://portal.example.com", customer.WithLogger(log))

	router := chi.NewRouter()
	customer.NewHandler(service, log, nil).Register(router)
	return router
}

func registration() map[string]string {
	return map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"username":   "ada@example.com",
		"password1":  "Str0ng!pass",
		"password2":  "Str0ng!pass",
	}
}

func TestHandleRegister_Created(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/customers/register", registration())
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[customer.Customer](t, rr)
	assert.Equal(t, "ada@example.com", created.Username)
}

func TestHandleRegister_BadBody(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/customers/register", "{not json")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func TestHandleRegister_ValidationRejection(t *testing.T) {
	router := newRouter(t)

	raw := registration()
	raw["password2"] = "Different1!"
	req := testutil.NewJSONRequest(t, http.MethodPost, "/customers/register", raw)
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusUnprocessableEntity)

	var envelope struct {
		Code   string `json:"code"`
		Fields []struct {
			Field   string `json:"field"`
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(testutil.ReadBody(t, rr), &envelope))
	assert.Equal(t, "validation", envelope.Code)
	require.Len(t, envelope.Fields, 1)
	assert.Equal(t, "password2", envelope.Fields[0].Field)
	assert.Equal(t, "invalid", envelope.Fields[0].Code)
}

func TestHandleLogin_UnknownUser(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/customers/login", map[string]string{
		"username": "ghost@example.com",
		"password": "whatever",
	})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusUnprocessableEntity)

	var envelope struct {
		Fields []struct {
			Field   string `json:"field"`
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(testutil.ReadBody(t, rr), &envelope))
	require.Len(t, envelope.Fields, 1)
	assert.Equal(t, "username", envelope.Fields[0].Field)
	assert.Equal(t, "not_found", envelope.Fields[0].Code)
	assert.Contains(t, envelope.Fields[0].Message, "ghost@example.com")
}

func TestHandleLogin_ReturnsToken(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/customers/register", registration()))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/customers/login", map[string]string{
		"username": "ada@example.com",
		"password": "Str0ng!pass",
	})
	rr = testutil.DoRequest(router, req)

	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONHasKey(t, rr, "access_token")
}
