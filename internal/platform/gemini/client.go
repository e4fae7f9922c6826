package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// 呼び出し側は会話応答面なので、このクライアントはエラーを返さない。
// 全ての失敗は固定のフォールバック文字列に落とす。

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-pro-latest"
	DefaultTimeout = 5 * time.Second
)

// 失敗時の応答文字列（外部契約。テストで固定しているので変更時は注意）
const (
	MsgUnavailable      = "AI service unavailable. Please try again later."
	MsgTransportError   = "Error communicating with AI service"
	MsgInvalidResponse  = "Invalid response format"
	MsgNoCandidates     = "No response from AI"
	MsgInvalidCandidate = "Invalid candidate format"
	MsgInvalidContent   = "Invalid content format"
	MsgInvalidParts     = "Invalid parts format"
	MsgNoParts          = "No text in response"
	MsgInvalidPart      = "Invalid part format"
	MsgEmptyText        = "Empty response"
	MsgUnparsable       = "Could not parse AI response"
)

// RetryPolicy: 試行回数と待ち時間。Retryable を差し替えれば
// 「全エラー再試行」を後から絞れる（呼び出し側は触らない）。
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       1 * time.Second,
		Retryable:   func(error) bool { return true }, // 現状は無条件に再試行（挙動互換）
	}
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Retry   RetryPolicy
}

type Client struct {
	cfg   Config
	httpc *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryPolicy()
	}
	if cfg.Retry.Retryable == nil {
		cfg.Retry.Retryable = func(error) bool { return true }
	}
	return &Client{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.Timeout},
	}
}

// generateContent の要求ボディ（contents → parts → text のネスト形。外部契約）
type requestBody struct {
	Contents []requestContent `json:"contents"`
}
type requestContent struct {
	Parts []requestPart `json:"parts"`
}
type requestPart struct {
	Text string `json:"text"`
}

// ステータス異常は再試行対象のエラーとして扱う
type statusError struct {
	code int
}

func (e *statusError) Error() string { return fmt.Sprintf("gemini: status %d", e.code) }

// Complete: prompt を投げて応答テキストを返す。決して error を返さない。
// 失敗は再試行（固定間隔・回数上限）の上でフォールバック文字列になる。
func (c *Client) Complete(ctx context.Context, prompt string) string {
	payload, err := json.Marshal(requestBody{
		Contents: []requestContent{{Parts: []requestPart{{Text: prompt}}}},
	})
	if err != nil {
		return MsgUnavailable
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.Retry.MaxAttempts; attempt++ {
		text, err := c.doOnce(ctx, payload)
		if err == nil {
			return text
		}
		lastErr = err
		log.Printf("[WARN] gemini attempt %d/%d failed: %v", attempt, c.cfg.Retry.MaxAttempts, err)

		if attempt == c.cfg.Retry.MaxAttempts || !c.cfg.Retry.Retryable(err) {
			break
		}
		select {
		case <-time.After(c.cfg.Retry.Delay):
		case <-ctx.Done():
			return MsgUnavailable
		}
	}

	// HTTPレベルまで届いていたか否かで文言を分ける（唯一の診断シグナル）
	if _, ok := lastErr.(*statusError); ok {
		return MsgTransportError
	}
	return MsgUnavailable
}

// doOnce: 1回分の呼び出し。復号エラーはエラーではなく確定文字列として返す
// （再試行しても同じ形が返るだけなので）。
func (c *Client) doOnce(ctx context.Context, payload []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &statusError{code: resp.StatusCode}
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return MsgUnparsable, nil
	}
	return parseResponse(decoded), nil
}

// parseResponse: candidates[0].content.parts[0].text を一段ずつ検証して辿る。
// どの段で壊れていたかが分かるよう、段ごとに別の文字列を返す。
func parseResponse(resp map[string]any) string {
	candidatesObj, ok := resp["candidates"]
	if !ok {
		return MsgInvalidResponse
	}
	candidates, ok := candidatesObj.([]any)
	if !ok {
		return MsgInvalidResponse
	}
	if len(candidates) == 0 {
		return MsgNoCandidates
	}

	candidate, ok := candidates[0].(map[string]any)
	if !ok {
		return MsgInvalidCandidate
	}

	content, ok := candidate["content"].(map[string]any)
	if !ok {
		return MsgInvalidContent
	}

	parts, ok := content["parts"].([]any)
	if !ok {
		return MsgInvalidParts
	}
	if len(parts) == 0 {
		return MsgNoParts
	}

	part, ok := parts[0].(map[string]any)
	if !ok {
		return MsgInvalidPart
	}

	text, ok := part["text"]
	if !ok || text == nil {
		return MsgEmptyText
	}
	if s, ok := text.(string); ok {
		return s
	}
	return fmt.Sprint(text)
}
