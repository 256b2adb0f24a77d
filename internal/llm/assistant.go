package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/Veraticus/akihabara-market/internal/model"
	"github.com/Veraticus/akihabara-market/internal/service"
)

// DefaultLanguage is used for generated descriptions when Config.Language
// is empty.
const DefaultLanguage = "Spanish"

// sharedCallTimeout bounds a provider call that outlives the caller who
// started it.
const sharedCallTimeout = 2 * time.Minute

// Assistant implements service.Assistant on top of a provider Client.
type Assistant struct {
	client    Client
	cache     *completionCache
	limiter   *rateLimiter
	logger    *slog.Logger
	flights   map[string]*flight
	inflight  singleflight.Group
	language  string
	retryOpts service.RetryOptions
	flightSeq uint64
	mu        sync.Mutex
}

// flight is one shared provider call. Its context is detached from the
// callers and canceled when the last waiting caller leaves.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	key     string
	waiters int
}

var _ service.Assistant = (*Assistant)(nil)

// NewAssistant creates the provider client described by cfg and wraps it.
func NewAssistant(cfg Config, logger *slog.Logger) (*Assistant, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewAssistantWithClient(client, cfg, logger), nil
}

// NewAssistantWithClient wraps an existing client. Only the assistant
// settings of cfg are used.
func NewAssistantWithClient(client Client, cfg Config, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := service.RetryOptions{
		Logger:       logger,
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts <= 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay <= 0 {
		retryOpts.InitialDelay = time.Second
	}

	language := strings.TrimSpace(cfg.Language)
	if language == "" {
		language = DefaultLanguage
	}

	return &Assistant{
		client:    client,
		cache:     newCompletionCache(cfg.CacheTTL),
		flights:   make(map[string]*flight),
		limiter:   newRateLimiter(cfg.RateLimit),
		logger:    logger,
		language:  language,
		retryOpts: retryOpts,
	}
}

// DescribeProduct drafts marketing copy for product.
func (a *Assistant) DescribeProduct(ctx context.Context, product model.Product) (string, error) {
	product.Normalize()
	if product.Name == "" {
		return "", fmt.Errorf("%w: name is required", model.ErrInvalidProduct)
	}

	text, err := a.complete(ctx, describePrompt(product, a.language))
	if err != nil {
		return "", err
	}

	a.logger.Info("generated product description",
		"product_id", product.ID,
		"product", product.Name)
	return text, nil
}

// SuggestCategory proposes one of model.ProductCategories for a product
// name. The model may still answer outside the list; the cleaned answer is
// returned as is in that case.
func (a *Assistant) SuggestCategory(ctx context.Context, productName string) (string, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return "", fmt.Errorf("%w: name is required", model.ErrInvalidProduct)
	}

	answer, err := a.complete(ctx, categoryPrompt(productName, model.ProductCategories))
	if err != nil {
		return "", err
	}

	category := cleanCategory(answer, model.ProductCategories)
	if category == "" {
		return "", common.ErrEmptyCompletion
	}

	a.logger.Info("suggested category", "product", productName, "category", category)
	return category, nil
}

// complete returns a cached completion or asks the provider. Concurrent
// calls with the same prompt share one request; each caller stops waiting
// when its own context is done.
func (a *Assistant) complete(ctx context.Context, prompt string) (string, error) {
	if ctx == nil {
		return "", errors.New("context cannot be nil")
	}

	if text, ok := a.cache.get(prompt); ok {
		a.logger.Debug("completion cache hit")
		return text, nil
	}

	f := a.join(ctx, prompt)
	defer a.leave(prompt, f)

	ch := a.inflight.DoChan(f.key, func() (any, error) {
		return a.fetch(f.ctx, prompt)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			a.logger.Debug("completion shared with concurrent caller")
		}
		return res.Val.(string), nil
	}
}

// fetch asks the provider for prompt under the rate limit and retry policy
// and caches the answer.
func (a *Assistant) fetch(ctx context.Context, prompt string) (string, error) {
	if err := a.limiter.wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit error: %w", err)
	}

	var text string
	err := common.WithRetry(ctx, func() error {
		var err error
		text, err = a.client.Complete(ctx, prompt)
		if err != nil {
			wrapped := retryable(err)
			a.logger.Warn("completion attempt failed", "error", err, "retryable", common.IsRetryable(wrapped))
			return wrapped
		}
		return nil
	}, a.retryOpts)
	if err != nil {
		return "", err
	}

	a.cache.set(prompt, text)
	return text, nil
}

// join registers the caller on the flight for prompt, starting a new one
// if none is running.
func (a *Assistant) join(ctx context.Context, prompt string) *flight {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, ok := a.flights[prompt]
	if !ok {
		a.flightSeq++
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedCallTimeout)
		f = &flight{
			ctx:    fctx,
			cancel: cancel,
			key:    strconv.FormatUint(a.flightSeq, 10) + ":" + prompt,
		}
		a.flights[prompt] = f
	}
	f.waiters++
	return f
}

func (a *Assistant) leave(prompt string, f *flight) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if a.flights[prompt] == f {
		delete(a.flights, prompt)
	}
}

// Close stops background goroutines.
func (a *Assistant) Close() error {
	a.cache.Close()
	a.limiter.Close()
	return nil
}
