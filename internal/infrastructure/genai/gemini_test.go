package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bonehealth/analysis-system/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: srv.URL,
	}, zerolog.Nop())
	return client, srv
}

func TestClient_Generate_ConcatenatesTextParts(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hairline fracture "},{"text":"of the radius."}]}}]}`))
	})

	text, err := client.Generate(context.Background(), ports.GenerateInput{
		Instruction:  "Analyze the X-ray image for fractures.",
		AudienceHint: "Explain in plain language.",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if text != "Hairline fracture of the radius." {
		t.Fatalf("unexpected text: %q", text)
	}
	if gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header not set, got %q", gotKey)
	}

	if len(gotReq.Contents) != 1 {
		t.Fatalf("expected one content block, got %d", len(gotReq.Contents))
	}
	parts := gotReq.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected instruction + audience hint, got %d parts", len(parts))
	}
	if parts[0].Text != "Analyze the X-ray image for fractures." {
		t.Fatalf("instruction must come first, got %q", parts[0].Text)
	}
	if parts[1].Text != "Explain in plain language." {
		t.Fatalf("audience hint must come last, got %q", parts[1].Text)
	}
}

func TestClient_Generate_EncodesImageInline(t *testing.T) {
	var gotReq generateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	image := []byte{0x89, 0x50, 0x4e, 0x47}
	_, err := client.Generate(context.Background(), ports.GenerateInput{
		Instruction: "Analyze this.",
		ImageData:   image,
		ImageMIME:   "image/png",
		Auxiliary:   "patient is 42",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	parts := gotReq.Contents[0].Parts
	if len(parts) != 3 {
		t.Fatalf("expected instruction + image + auxiliary, got %d parts", len(parts))
	}
	img := parts[1].InlineData
	if img == nil {
		t.Fatalf("second part must carry the image")
	}
	if img.MIMEType != "image/png" {
		t.Fatalf("unexpected mime type: %q", img.MIMEType)
	}
	if img.Data != base64.StdEncoding.EncodeToString(image) {
		t.Fatalf("image bytes not base64-encoded correctly: %q", img.Data)
	}
}

func TestClient_Generate_APIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := client.Generate(context.Background(), ports.GenerateInput{Instruction: "hi"})
	if err == nil {
		t.Fatalf("expected error on 429")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected upstream message in error, got %v", err)
	}
}

func TestClient_Generate_EmptyCandidates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Generate(context.Background(), ports.GenerateInput{Instruction: "hi"})
	if err == nil || !strings.Contains(err.Error(), "empty response") {
		t.Fatalf("expected empty-response error, got %v", err)
	}
}

func TestClient_Generate_ContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Generate(ctx, ports.GenerateInput{Instruction: "hi"}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{APIKey: "k"}, zerolog.Nop())
	if client.ModelName() != defaultModel {
		t.Fatalf("expected default model, got %q", client.ModelName())
	}
	if client.cfg.BaseURL != defaultBaseURL {
		t.Fatalf("expected default base url, got %q", client.cfg.BaseURL)
	}
	if client.cfg.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %v", client.cfg.Timeout)
	}
}
