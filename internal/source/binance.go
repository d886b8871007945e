package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"leadlag-go/internal/config"
	"leadlag-go/internal/metrics"
	"leadlag-go/internal/series"
)

const (
	defaultBinanceBaseURL = "wss://stream.binance.com:9443"
	defaultRecordDuration = 5 * time.Minute
)

type binanceEnvelope struct {
	Stream string       `json:"stream"`
	Data   binanceTrade `json:"data"`
}

type binanceTrade struct {
	Price     string `json:"p"`
	Quantity  string `json:"q"`
	TradeTime int64  `json:"T"`
}

// Binance records trades of two symbols for a fixed wall-clock window and turns them into series.
type Binance struct {
	baseURL    string
	symbols    [2]string
	duration   time.Duration
	assumedLag int
	log        zerolog.Logger
}

// Option configures Binance construction parameters.
type Option func(*Binance)

// WithRecordDuration overrides how long trades are collected.
func WithRecordDuration(d time.Duration) Option {
	return func(b *Binance) {
		if d > 0 {
			b.duration = d
		}
	}
}

// WithBaseURL points the recorder at another websocket endpoint.
func WithBaseURL(url string) Option {
	return func(b *Binance) {
		if url != "" {
			b.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// NewBinance builds a recorder from config.
func NewBinance(cfg config.Binance, assumedLag int, log zerolog.Logger, opts ...Option) *Binance {
	b := &Binance{
		baseURL:    defaultBinanceBaseURL,
		symbols:    [2]string{strings.ToUpper(strings.TrimSpace(cfg.SymbolX)), strings.ToUpper(strings.TrimSpace(cfg.SymbolY))},
		duration:   time.Duration(cfg.DurationSecs) * time.Second,
		assumedLag: assumedLag,
		log:        log,
	}
	if b.duration <= 0 {
		b.duration = defaultRecordDuration
	}
	WithBaseURL(cfg.BaseURL)(b)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the provider identifier.
func (b *Binance) Name() string { return ProviderBinance }

// Load blocks for the record window, then returns both series measured in seconds since the first
// trade seen on either symbol.
func (b *Binance) Load(ctx context.Context) (Dataset, error) {
	if b.symbols[0] == "" || b.symbols[1] == "" {
		return Dataset{}, fmt.Errorf("binance recorder requires two symbols, got %q", b.symbols)
	}
	recordCtx, cancel := context.WithTimeout(ctx, b.duration)
	defer cancel()

	ticks := make(chan series.Tick, 1024)
	errCh := make(chan error, 1)
	go func() { errCh <- b.run(recordCtx, ticks) }()

	recorded := map[string][]series.Tick{}
	var err error
collect:
	for {
		select {
		case tk := <-ticks:
			recorded[tk.Symbol] = append(recorded[tk.Symbol], tk)
		case err = <-errCh:
			break collect
		}
	}
	for drained := false; !drained; {
		select {
		case tk := <-ticks:
			recorded[tk.Symbol] = append(recorded[tk.Symbol], tk)
		default:
			drained = true
		}
	}

	if ctx.Err() != nil {
		return Dataset{}, ctx.Err()
	}
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return Dataset{}, err
	}

	origin, ok := earliest(recorded)
	if !ok {
		return Dataset{}, fmt.Errorf("binance recorder: no trades within %s: %w", b.duration, series.ErrDegenerateSeries)
	}
	ds := Dataset{
		X:          series.FromTicks(recorded[b.symbols[0]], origin),
		Y:          series.FromTicks(recorded[b.symbols[1]], origin),
		Symbols:    b.symbols,
		AssumedLag: b.assumedLag,
	}
	b.log.Info().
		Str("x", b.symbols[0]).Int("nx", ds.X.Len()).
		Str("y", b.symbols[1]).Int("ny", ds.Y.Len()).
		Msg("recorded trades")
	return ds, ds.validate()
}

func (b *Binance) streamURL() string {
	streams := make([]string, len(b.symbols))
	for i, sym := range b.symbols {
		streams[i] = strings.ToLower(sym) + "@trade"
	}
	return fmt.Sprintf("%s/stream?streams=%s", b.baseURL, strings.Join(streams, "/"))
}

func (b *Binance) run(ctx context.Context, out chan<- series.Tick) error {
	url := b.streamURL()
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := b.consume(ctx, url, out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.log.Warn().Err(err).Msg("binance stream disconnected, retrying")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
			continue
		}
		return nil
	}
}

func (b *Binance) consume(ctx context.Context, url string, out chan<- series.Tick) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	b.log.Info().Str("provider", ProviderBinance).Strs("symbols", b.symbols[:]).Msg("connected trade stream")

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		return nil
	})

	// unblocks ReadMessage once the record window closes
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					b.log.Warn().Err(err).Msg("binance ping failed")
					return
				}
			case <-ctx.Done():
				conn.Close()
				return
			case <-stop:
				return
			}
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		tick, err := parseBinanceTrade(message)
		if err != nil {
			b.log.Warn().Err(err).Msg("skipping binance message")
			continue
		}

		select {
		case out <- tick:
			metrics.TicksTotal.WithLabelValues(tick.Symbol).Inc()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func parseBinanceTrade(message []byte) (series.Tick, error) {
	var env binanceEnvelope
	if err := json.Unmarshal(message, &env); err != nil {
		return series.Tick{}, fmt.Errorf("decode: %w", err)
	}
	px, err := strconv.ParseFloat(env.Data.Price, 64)
	if err != nil {
		return series.Tick{}, fmt.Errorf("invalid price: %w", err)
	}
	qty, err := strconv.ParseFloat(env.Data.Quantity, 64)
	if err != nil {
		return series.Tick{}, fmt.Errorf("invalid quantity: %w", err)
	}
	return series.Tick{
		Symbol: parseBinanceSymbol(env.Stream),
		Price:  px,
		Size:   qty,
		Ts:     time.UnixMilli(env.Data.TradeTime),
	}, nil
}

func parseBinanceSymbol(stream string) string {
	parts := strings.Split(stream, "@")
	if len(parts) == 0 || parts[0] == "" {
		return strings.ToUpper(stream)
	}
	return strings.ToUpper(parts[0])
}

func earliest(recorded map[string][]series.Tick) (time.Time, bool) {
	var first time.Time
	found := false
	for _, ticks := range recorded {
		for _, tk := range ticks {
			if !found || tk.Ts.Before(first) {
				first, found = tk.Ts, true
			}
		}
	}
	return first, found
}
