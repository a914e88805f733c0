// Package client — программный аналог слоя данных фронтенда: ходит в
// REST API, кэширует ответы, переводит snake_case провода в camelCase
// view-формы, сортирует составы и считает производную статистику.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultStaleTime = 2 * time.Minute

// APIError — не-2xx ответ сервера.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithStaleTime задаёт время жизни кэшированного состава.
func WithStaleTime(d time.Duration) Option {
	return func(c *Client) { c.staleTime = d }
}

type cachedLineup struct {
	lineup    *Lineup
	fetchedAt time.Time
}

// Client — HTTP-клиент API составов с кэшем на время staleTime.
// Безопасен для конкурентного использования.
type Client struct {
	baseURL    string
	httpClient *http.Client
	staleTime  time.Duration

	mu    sync.Mutex
	cache map[int]cachedLineup
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		staleTime:  defaultStaleTime,
		cache:      make(map[int]cachedLineup),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tournaments возвращает список турниров, опционально по типу.
func (c *Client) Tournaments(ctx context.Context, tournamentType string) ([]Tournament, error) {
	url := c.baseURL + "/tournaments"
	if tournamentType != "" {
		url += "?type=" + tournamentType
	}

	var wire []wireTournament
	if err := c.getJSON(ctx, url, &wire); err != nil {
		return nil, err
	}

	tournaments := make([]Tournament, len(wire))
	for i, t := range wire {
		tournaments[i] = t.toView()
	}
	return tournaments, nil
}

// TournamentLineup возвращает готовый к показу состав турнира.
// Повторные вызовы в пределах staleTime отдают кэшированную копию.
func (c *Client) TournamentLineup(ctx context.Context, tournamentID int) (*Lineup, error) {
	c.mu.Lock()
	if entry, ok := c.cache[tournamentID]; ok && time.Since(entry.fetchedAt) < c.staleTime {
		c.mu.Unlock()
		return entry.lineup, nil
	}
	c.mu.Unlock()

	url := c.baseURL + "/tournaments/" + strconv.Itoa(tournamentID) + "/details"
	var details wireTournamentDetails
	if err := c.getJSON(ctx, url, &details); err != nil {
		return nil, err
	}

	lineup := buildLineup(&details)

	c.mu.Lock()
	c.cache[tournamentID] = cachedLineup{lineup: lineup, fetchedAt: time.Now()}
	c.mu.Unlock()

	return lineup, nil
}

// Prefetch прогревает кэш нескольких турниров параллельно.
func (c *Client) Prefetch(ctx context.Context, tournamentIDs ...int) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, id := range tournamentIDs {
		id := id
		g.Go(func() error {
			_, err := c.TournamentLineup(gCtx, id)
			return err
		})
	}
	return g.Wait()
}

// Invalidate сбрасывает кэш турнира; следующий запрос пойдёт в сеть.
func (c *Client) Invalidate(tournamentID int) {
	c.mu.Lock()
	delete(c.cache, tournamentID)
	c.mu.Unlock()
}

func (c *Client) getJSON(ctx context.Context, url string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func (c *Client) postJSON(ctx context.Context, url string, body, dst interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return newAPIError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func newAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		apiErr.Message = "unable to read error response"
		return apiErr
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if jsonErr := json.Unmarshal(raw, &envelope); jsonErr == nil && len(envelope.Error) > 0 {
		var msg string
		if json.Unmarshal(envelope.Error, &msg) == nil {
			apiErr.Message = msg
			return apiErr
		}
		apiErr.Message = string(envelope.Error)
		return apiErr
	}
	apiErr.Message = string(raw)
	return apiErr
}
