package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"flatmoney-service/pkg/logger"
)

// APIBenchmark 对运行中的服务发起并发请求
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *http.Client
}

// BenchmarkResult 一轮压测的统计
type BenchmarkResult struct {
	Path           string        `json:"path"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	P50            time.Duration `json:"p50"`
	P95            time.Duration `json:"p95"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

// requestResult 单个请求的结果
type requestResult struct {
	duration   time.Duration
	statusCode int
	err        error
}

// envelope 服务统一响应格式
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewAPIBenchmark 创建压测实例
func NewAPIBenchmark(baseURL string, concurrency, requests int, authToken string) *APIBenchmark {
	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Call 发送单个请求并解析响应信封，out 为 nil 时忽略 data
func (b *APIBenchmark) Call(ctx context.Context, method, path string, payload interface{}, out interface{}) (int, error) {
	body, err := encode(payload)
	if err != nil {
		return 0, err
	}
	resp, err := b.do(ctx, method, path, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return resp.StatusCode, fmt.Errorf("解析响应失败: %w", err)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("解析数据失败: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// Run 以 Concurrency 个并发发送 Requests 次相同请求
func (b *APIBenchmark) Run(ctx context.Context, method, path string, payload interface{}) *BenchmarkResult {
	body, err := encode(payload)
	if err != nil {
		return &BenchmarkResult{Path: path, Method: method, Errors: []string{err.Error()}}
	}

	results := make(chan requestResult, b.Requests)
	limiter := make(chan struct{}, b.Concurrency)
	var wg sync.WaitGroup

	startTime := time.Now()
	for i := 0; i < b.Requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()

			start := time.Now()
			resp, err := b.do(ctx, method, path, body)
			if err != nil {
				results <- requestResult{err: err}
				return
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			results <- requestResult{duration: time.Since(start), statusCode: resp.StatusCode}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	result := &BenchmarkResult{
		Path:          path,
		Method:        method,
		Concurrency:   b.Concurrency,
		TotalRequests: b.Requests,
		StatusCodes:   make(map[int]int),
	}
	var durations []time.Duration
	for r := range results {
		if r.err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, r.err.Error())
			continue
		}
		durations = append(durations, r.duration)
		result.StatusCodes[r.statusCode]++
		if r.statusCode >= 200 && r.statusCode < 300 {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
	}

	result.TotalTime = time.Since(startTime)
	if secs := result.TotalTime.Seconds(); secs > 0 {
		result.RequestsPerSec = float64(b.Requests) / secs
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	result.P50 = percentile(durations, 0.50)
	result.P95 = percentile(durations, 0.95)
	if n := len(durations); n > 0 {
		result.MaxTime = durations[n-1]
	}
	return result
}

func (b *APIBenchmark) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, b.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if b.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.AuthToken)
	}
	return b.Client.Do(req)
}

func encode(payload interface{}) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("JSON编码错误: %w", err)
	}
	return data, nil
}

// percentile 要求 sorted 已升序
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

// Log 输出压测结果
func (r *BenchmarkResult) Log() {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.Path),
		zap.Int("concurrency", r.Concurrency),
		zap.Int("total", r.TotalRequests),
		zap.Int("success", r.SuccessCount),
		zap.Int("failure", r.FailureCount),
		zap.Duration("p50", r.P50),
		zap.Duration("p95", r.P95),
		zap.Duration("max", r.MaxTime),
		zap.Float64("rps", r.RequestsPerSec),
		zap.Any("status_codes", r.StatusCodes),
	}
	if len(r.Errors) > 0 {
		shown := r.Errors
		if len(shown) > 5 {
			shown = shown[:5]
		}
		fields = append(fields, zap.Strings("errors", shown))
	}
	logger.L().Info("benchmark result", fields...)
}
