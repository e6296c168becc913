// Package loki batches log lines and ships them to a Grafana Loki push endpoint.
package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"io"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

const tenantHeader = "X-Scope-OrgID"

var ErrBufferFull = errors.New("loki buffer is full, entry dropped")

type ErrorReporter interface {
	Error(msg string, args ...any)
}

type Config struct {
	URL string `validate:"required,url"`

	// TenantID is sent as X-Scope-OrgID for multi-tenant installations.
	TenantID string

	Username string
	Password string

	// Labels are attached to every stream. The entry level is added as the "level" label.
	Labels map[string]string

	BatchSize    int           `validate:"gte=1"`
	BatchWait    time.Duration `validate:"gte=1"`
	BufferSize   int           `validate:"gte=1"`
	FlushTimeout time.Duration `validate:"gte=1"`
}

func (cfg *Config) applyDefaults() {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 500
	}
	if cfg.BatchWait == 0 {
		cfg.BatchWait = 3 * time.Second
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 2048
	}
	if cfg.FlushTimeout == 0 {
		cfg.FlushTimeout = 10 * time.Second
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

// Entry is one log line. Fields end up in the JSON body of the line, not in stream labels.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]any
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

type Pusher struct {
	cfg      Config
	client   *http.Client
	reporter ErrorReporter

	entries  chan Entry
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	dropped  atomic.Uint64

	// accessed only by the run goroutine
	pending map[string][][2]string
	size    int
}

func New(cfg Config, reporter ErrorReporter) (*Pusher, error) {
	cfg.applyDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid loki config: %w", err)
	}

	p := &Pusher{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.FlushTimeout},
		reporter: reporter,
		entries:  make(chan Entry, cfg.BufferSize),
		done:     make(chan struct{}),
		pending:  map[string][][2]string{},
	}

	p.wg.Add(1)
	go p.run()
	return p, nil
}

// Push enqueues the entry. It never blocks: when the buffer is full the entry is dropped.
func (p *Pusher) Push(e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	select {
	case p.entries <- e:
		return nil
	default:
		p.dropped.Add(1)
		return ErrBufferFull
	}
}

func (p *Pusher) Dropped() uint64 {
	return p.dropped.Load()
}

// Stop sends whatever is still queued and waits for the last request to finish.
func (p *Pusher) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		p.wg.Wait()
	})
}

func (p *Pusher) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.BatchWait)
	defer ticker.Stop()

	for {
		select {
		case e := <-p.entries:
			p.add(e)
		case <-ticker.C:
			p.flush()
		case <-p.done:
			for {
				select {
				case e := <-p.entries:
					p.add(e)
				default:
					p.flush()
					return
				}
			}
		}
	}
}

func (p *Pusher) add(e Entry) {
	p.pending[e.Level] = append(p.pending[e.Level], line(e))
	p.size++
	if p.size >= p.cfg.BatchSize {
		p.flush()
	}
}

func (p *Pusher) flush() {
	if p.size == 0 {
		return
	}

	req := pushRequest{}
	for _, level := range slices.Sorted(maps.Keys(p.pending)) {
		labels := maps.Clone(p.cfg.Labels)
		labels["level"] = level
		req.Streams = append(req.Streams, stream{Stream: labels, Values: p.pending[level]})
	}

	p.pending = map[string][][2]string{}
	p.size = 0

	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.FlushTimeout)
	defer cancel()

	if err := p.send(ctx, req); err != nil && p.reporter != nil {
		p.reporter.Error("failed to push logs to loki", "error", err, "streams", len(req.Streams))
	}
}

func line(e Entry) [2]string {
	body := make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		body[k] = v
	}
	body["msg"] = e.Message

	encoded, err := json.Marshal(body)
	if err != nil {
		encoded = []byte(strconv.Quote(e.Message))
	}
	return [2]string{strconv.FormatInt(e.Time.UnixNano(), 10), string(encoded)}
}

func (p *Pusher) send(ctx context.Context, req pushRequest) error {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gz).Encode(req); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Content-Encoding", "gzip")
	if p.cfg.TenantID != "" {
		httpReq.Header.Set(tenantHeader, p.cfg.TenantID)
	}
	if p.cfg.Username != "" {
		httpReq.SetBasicAuth(p.cfg.Username, p.cfg.Password)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("loki responded with %s: %s", resp.Status, body)
	}
	return nil
}
