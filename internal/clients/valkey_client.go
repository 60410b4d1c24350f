package clients

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/reelverdict/internal/models"
)

const (
	VALKEY_ANALYSIS_TTL = 24 * time.Hour
	VALKEY_RETRY_WAIT   = 250 * time.Millisecond
)

type ValkeyOptions struct {
	Address  string
	Password string
	TLS      bool
}

// ValkeyClient caches movie analyses. It satisfies analysis.Cache.
type ValkeyClient struct {
	client valkey.Client
	opts   ValkeyOptions
	mu     sync.Mutex
}

func (o ValkeyOptions) clientOption() valkey.ClientOption {
	opts := valkey.ClientOption{
		InitAddress:      []string{o.Address},
		Password:         o.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if o.TLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}
	return opts
}

func dialValkey(ctx context.Context, o ValkeyOptions) (valkey.Client, error) {
	client, err := valkey.NewClient(o.clientOption())
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}
	return client, nil
}

func NewValkeyClient(ctx context.Context, o ValkeyOptions) (*ValkeyClient, error) {
	if o.Address == "" {
		return nil, errors.New("[ValkeyClient] no address configured")
	}

	client, err := dialValkey(ctx, o)
	if err != nil {
		return nil, err
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", o.Address))
	return &ValkeyClient{client: client, opts: o}, nil
}

func (vc *ValkeyClient) current() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.client
}

func (vc *ValkeyClient) recreateClient(ctx context.Context) {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := dialValkey(ctx, vc.opts)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed",
			slog.String("error", err.Error()))
		return
	}

	vc.client.Close()
	vc.client = client
	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
}

func (vc *ValkeyClient) Close() {
	vc.current().Close()
}

// GetAnalysis returns the cached analysis under key, or nil on a miss.
func (vc *ValkeyClient) GetAnalysis(ctx context.Context, key string) (*models.MovieAnalysis, error) {
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Get().Key(key).Build()
	}, MAX_RETRIES)

	data, err := res.AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to get %s: %w", key, err)
	}

	return decodeAnalysis(data)
}

func (vc *ValkeyClient) SetAnalysis(ctx context.Context, key string, a models.MovieAnalysis) error {
	data, err := encodeAnalysis(a)
	if err != nil {
		return err
	}

	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Set().Key(key).Value(valkey.BinaryString(data)).
			ExSeconds(int64(VALKEY_ANALYSIS_TTL.Seconds())).Build()
	}, MAX_RETRIES)
	if err := res.Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] failed to set %s: %w", key, err)
	}

	slog.Debug("[ValkeyClient] Cached analysis", slog.String("key", key))
	return nil
}

func encodeAnalysis(a models.MovieAnalysis) ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to encode analysis: %w", err)
	}
	return data, nil
}

func decodeAnalysis(data []byte) (*models.MovieAnalysis, error) {
	var a models.MovieAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to decode analysis: %w", err)
	}
	return &a, nil
}

// DoWithRetry builds the command against the live client on every attempt so a
// recreated connection is picked up.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		client := vc.current()
		result = client.Do(ctx, build(client))
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		if isConnectionError(err) {
			vc.recreateClient(ctx)
		}

		if !waitForRetry(ctx, i, retries, VALKEY_RETRY_WAIT) {
			break
		}
	}

	return result
}

// waitForRetry sleeps before the next attempt. It reports false without
// waiting when attempt was the last one or ctx is done.
func waitForRetry(ctx context.Context, attempt, retries int, wait time.Duration) bool {
	if attempt >= retries-1 {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(wait):
		return true
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
