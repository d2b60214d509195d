package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/mystic-backend/internal/config"
	"github.com/deppfellow/mystic-backend/internal/errs"
	"github.com/deppfellow/mystic-backend/internal/lib/openai"
	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/deppfellow/mystic-backend/internal/validation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, chatURL string) *server.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	if chatURL != "" {
		cfg.Chat.BaseURL = chatURL
	}

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)

	return s
}

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func userHi() []json.RawMessage {
	return []json.RawMessage{json.RawMessage(`{"role":"user","content":"hi"}`)}
}

func requireHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestChatRequestValidation(t *testing.T) {
	for _, body := range []string{``, `{}`, `{"messages":[]}`, `{"messages":null}`, `{"model":"x"}`} {
		t.Run(body, func(t *testing.T) {
			err := validation.BindAndValidate([]byte(body), &ChatRequest{})
			requireHTTPError(t, err, http.StatusBadRequest, "No messages provided")
		})
	}
}

func TestChatCompleteMissingCredential(t *testing.T) {
	svc := NewChatService(newTestServer(t, ""), env(nil))

	_, err := svc.Complete(context.Background(), &ChatRequest{
		Messages: userHi(),
	})
	requireHTTPError(t, err, http.StatusInternalServerError, "OPENAI_API_KEY not set")
	assert.False(t, svc.Configured())
}

func TestChatCompleteReadsCredentialPerCall(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer upstream.Close()

	values := map[string]string{}
	svc := NewChatService(newTestServer(t, upstream.URL), env(values))
	req := &ChatRequest{Messages: userHi()}

	_, err := svc.Complete(context.Background(), req)
	require.Error(t, err)

	values["OPENAI_API_KEY"] = "sk-late"
	resp, err := svc.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Message.Content)
	assert.True(t, svc.Configured())
}

func TestChatCompleteDefaultsModel(t *testing.T) {
	var got openai.ChatRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"content":"The stars say hi."}}]}`))
	}))
	defer upstream.Close()

	svc := NewChatService(newTestServer(t, upstream.URL), env(map[string]string{"OPENAI_API_KEY": "sk-test"}))

	resp, err := svc.Complete(context.Background(), &ChatRequest{
		Messages: userHi(),
	})
	require.NoError(t, err)
	assert.Equal(t, "The stars say hi.", resp.Message.Content)
	assert.Equal(t, "gpt-4o-mini", got.Model)

	_, err = svc.Complete(context.Background(), &ChatRequest{
		Messages: userHi(),
		Model:    "gpt-4o",
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", got.Model)
}

func TestChatCompleteForwardsMessagesUnchanged(t *testing.T) {
	var got struct {
		Messages json.RawMessage `json:"messages"`
	}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer upstream.Close()

	messages := `[{"role":"user","content":"hi","name":"bob"},{"role":"user","content":[{"type":"text","text":"and my sign?"}]}]`

	var req ChatRequest
	require.NoError(t, validation.BindAndValidate([]byte(`{"messages":`+messages+`}`), &req))

	svc := NewChatService(newTestServer(t, upstream.URL), env(map[string]string{"OPENAI_API_KEY": "k"}))
	_, err := svc.Complete(context.Background(), &req)
	require.NoError(t, err)

	assert.Equal(t, messages, string(got.Messages))
}

func TestChatCompleteUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid key sk-secret"}`))
	}))
	defer upstream.Close()

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	ctx := logger.WithContext(context.Background())

	svc := NewChatService(newTestServer(t, upstream.URL), env(map[string]string{"OPENAI_API_KEY": "k"}))

	_, err := svc.Complete(ctx, &ChatRequest{Messages: userHi()})
	requireHTTPError(t, err, http.StatusBadGateway, "Chat upstream error")

	assert.Contains(t, logs.String(), `"upstream_status":401`)
	assert.Contains(t, logs.String(), "invalid key")
	assert.NotContains(t, err.Error(), "invalid key")
}

func TestChatCompleteUnexpectedFailures(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer upstream.Close()

	svc := NewChatService(newTestServer(t, upstream.URL), env(map[string]string{"OPENAI_API_KEY": "k"}))

	_, err := svc.Complete(context.Background(), &ChatRequest{Messages: userHi()})
	require.Error(t, err)

	var httpErr *errs.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestHoroscope(t *testing.T) {
	svc := NewHoroscopeService(newTestServer(t, ""))

	for _, body := range []string{`{"sign":"leo"}`, `{"sign":"LEO"}`, `{"sign":"  leo "}`} {
		t.Run(body, func(t *testing.T) {
			var req HoroscopeRequest
			require.NoError(t, validation.BindAndValidate([]byte(body), &req))

			resp, err := svc.Read(context.Background(), &req)
			require.NoError(t, err)
			assert.Equal(t, Horoscope{
				Daily:   "Leo: Stay open to small shifts today.",
				Weekly:  "Leo: Clear one lingering task this week.",
				Monthly: "Leo: Balance ambition with rest this month.",
				Yearly:  "Leo: Build steadily; focus on one key theme this year.",
			}, resp.Horoscope)
		})
	}
}

func TestHoroscopeRequiresSign(t *testing.T) {
	for _, body := range []string{``, `{}`, `{"sign":""}`, `{"sign":"   "}`, `{"sign":null}`} {
		t.Run(body, func(t *testing.T) {
			err := validation.BindAndValidate([]byte(body), &HoroscopeRequest{})
			requireHTTPError(t, err, http.StatusBadRequest, "Sign required")
		})
	}
}

func TestNumerology(t *testing.T) {
	svc := NewNumerologyService(newTestServer(t, ""))

	var req NumerologyRequest
	require.NoError(t, validation.BindAndValidate([]byte(`{"name":" John Smith ","dob":"1990-05-15 "}`), &req))

	result, err := svc.Compute(context.Background(), &req)
	require.NoError(t, err)

	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lifePath":3,"expression":8,"soulUrge":6}`, string(encoded))

	reading, err := svc.Reading(context.Background(), &req)
	require.NoError(t, err)
	require.NotNil(t, reading.LifePath)
	assert.Equal(t, 3, reading.LifePath.Number)
	assert.Equal(t, "Creative, expressive, optimistic.", reading.LifePath.Meaning)
}

func TestNumerologyNullLifePath(t *testing.T) {
	svc := NewNumerologyService(newTestServer(t, ""))

	result, err := svc.Compute(context.Background(), &NumerologyRequest{Name: "Ann", DOB: "15/05/1990"})
	require.NoError(t, err)
	assert.Nil(t, result.LifePath)

	reading, err := svc.Reading(context.Background(), &NumerologyRequest{Name: "Ann", DOB: "15/05/1990"})
	require.NoError(t, err)
	assert.Nil(t, reading.LifePath)
	assert.NotNil(t, reading.Expression)
}

func TestNumerologyRequiresNameAndDOB(t *testing.T) {
	for _, body := range []string{`{}`, `{"name":"Ann"}`, `{"dob":"1990-01-01"}`, `{"name":"  ","dob":"1990-01-01"}`} {
		t.Run(body, func(t *testing.T) {
			err := validation.BindAndValidate([]byte(body), &NumerologyRequest{})
			requireHTTPError(t, err, http.StatusBadRequest, "Name and dob required")
		})
	}
}

func TestTarot(t *testing.T) {
	svc := NewTarotService(newTestServer(t, ""))

	tests := []struct {
		body string
		want string
	}{
		{``, `{"intent":"general","spread":"Daily","notes":"Tarot interpretations can be served from backend if desired."}`},
		{`{"intent":"love"}`, `{"intent":"love","spread":"Daily","notes":"Tarot interpretations can be served from backend if desired."}`},
		{`{"intent":null,"spread":3}`, `{"intent":null,"spread":3,"notes":"Tarot interpretations can be served from backend if desired."}`},
		{`{"spread":{"cards":["The Fool"]}}`, `{"intent":"general","spread":{"cards":["The Fool"]},"notes":"Tarot interpretations can be served from backend if desired."}`},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req TarotRequest
			require.NoError(t, validation.BindAndValidate([]byte(tt.body), &req))

			resp, err := svc.Draw(context.Background(), &req)
			require.NoError(t, err)

			encoded, err := json.Marshal(resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(encoded))
		})
	}
}

func TestZodiac(t *testing.T) {
	svc := NewZodiacService(newTestServer(t, ""))

	var req ZodiacRequest
	require.NoError(t, validation.BindAndValidate([]byte(`{"dob":"1990-08-01"}`), &req))

	resp, err := svc.Sign(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, "Leo", resp.Sign)
}

func TestZodiacRequiresValidDOB(t *testing.T) {
	for _, body := range []string{`{}`, `{"dob":""}`, `{"dob":"1990-13-01"}`, `{"dob":"1990-02-30"}`, `{"dob":"01/08/1990"}`} {
		t.Run(body, func(t *testing.T) {
			err := validation.BindAndValidate([]byte(body), &ZodiacRequest{})
			requireHTTPError(t, err, http.StatusBadRequest, "Valid dob required")
		})
	}
}

func TestZodiacCompatibility(t *testing.T) {
	svc := NewZodiacService(newTestServer(t, ""))

	var req CompatibilityRequest
	require.NoError(t, validation.BindAndValidate([]byte(`{"sign":" leo","partner":"ARIES"}`), &req))

	resp, err := svc.Compatibility(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, &CompatibilityResponse{Sign: "Leo", Partner: "Aries", Score: 88}, resp)

	resp, err = svc.Compatibility(context.Background(), &CompatibilityRequest{Sign: "Aries", Partner: "Cancer"})
	require.NoError(t, err)
	assert.Equal(t, 70, resp.Score)
}

func TestZodiacCompatibilityRejectsSigns(t *testing.T) {
	for _, body := range []string{`{}`, `{"sign":"Leo"}`, `{"sign":" ","partner":"Leo"}`} {
		t.Run(body, func(t *testing.T) {
			err := validation.BindAndValidate([]byte(body), &CompatibilityRequest{})
			requireHTTPError(t, err, http.StatusBadRequest, "Two valid signs required")
		})
	}

	svc := NewZodiacService(newTestServer(t, ""))
	_, err := svc.Compatibility(context.Background(), &CompatibilityRequest{Sign: "Ophiuchus", Partner: "Leo"})
	requireHTTPError(t, err, http.StatusBadRequest, "Two valid signs required")

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "sign", httpErr.Errors[0].Field)
}

func TestNewServices(t *testing.T) {
	services, err := NewServices(newTestServer(t, ""))
	require.NoError(t, err)

	assert.NotNil(t, services.Chat)
	assert.NotNil(t, services.Horoscope)
	assert.NotNil(t, services.Numerology)
	assert.NotNil(t, services.Tarot)
	assert.NotNil(t, services.Zodiac)
}
