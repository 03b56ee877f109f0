// Command feed-simulator serves a local upstream provider so the service can
// run without credentials. Point FEED_URL at ws://<addr>/ws.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

type control struct {
	A string          `json:"a"`
	V json.RawMessage `json:"v"`
}

type instrument struct {
	price  float64
	volume int64
	oi     int64
}

type session struct {
	mu          sync.Mutex
	subscribed  map[string]*instrument
	basePrice   float64
	priceSpread float64
}

func (s *session) subscribe(ids []uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		key := strconv.FormatUint(id, 10)
		if _, ok := s.subscribed[key]; ok {
			continue
		}
		s.subscribed[key] = &instrument{
			price: s.basePrice + (rand.Float64()-0.5)*s.priceSpread,
			oi:    int64(rand.Intn(100000)),
		}
	}
}

func (s *session) unsubscribe(ids []uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.subscribed, strconv.FormatUint(id, 10))
	}
}

// nextFrame advances every subscribed instrument by one random step.
func (s *session) nextFrame(now time.Time) []tickv1.ProviderTick {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := make([]tickv1.ProviderTick, 0, len(s.subscribed))
	for id, inst := range s.subscribed {
		inst.price += (rand.Float64() - 0.5) * s.priceSpread * 0.01
		if inst.price <= 0 {
			inst.price = s.basePrice
		}
		inst.price = float64(int64(inst.price*20)) / 20
		inst.volume += int64(rand.Intn(500))
		inst.oi += int64(rand.Intn(21) - 10)

		frame = append(frame, tickv1.ProviderTick{
			InstrumentToken:   tickv1.InstrumentRef(id),
			LastPrice:         inst.price,
			VolumeTraded:      inst.volume,
			Timestamp:         &tickv1.ProviderTime{Time: now},
			ExchangeTimestamp: &tickv1.ProviderTime{Time: now},
			OI:                inst.oi,
			OIDayHigh:         inst.oi + 100,
			OIDayLow:          inst.oi - 100,
			Depth:             generateDepth(inst.price, 5),
		})
	}
	return frame
}

func generateDepth(lastPrice float64, levels int) tickv1.ProviderDepth {
	depth := tickv1.ProviderDepth{
		Buy:  make([]tickv1.ProviderLevel, levels),
		Sell: make([]tickv1.ProviderLevel, levels),
	}
	for i := 0; i < levels; i++ {
		step := 0.05 * float64(i+1)
		depth.Buy[i] = tickv1.ProviderLevel{
			Price:    lastPrice - step,
			Quantity: int64(rand.Intn(1000) + 1),
			Orders:   int64(rand.Intn(20) + 1),
		}
		depth.Sell[i] = tickv1.ProviderLevel{
			Price:    lastPrice + step,
			Quantity: int64(rand.Intn(1000) + 1),
			Orders:   int64(rand.Intn(20) + 1),
		}
	}
	return depth
}

func main() {
	var (
		addr        = flag.String("addr", ":9001", "Listen address")
		interval    = flag.Duration("interval", 500*time.Millisecond, "Delay between frames")
		heartbeat   = flag.Duration("heartbeat", 5*time.Second, "Delay between 1-byte heartbeat frames")
		basePrice   = flag.Float64("base-price", 3945.5, "Base price for generated instruments")
		priceSpread = flag.Float64("price-spread", 200.0, "Price spread range")
	)
	flag.Parse()

	appLogger, err := logger.NewLogger(logger.WithLoggingLevel(logger.DebugLevel))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			appLogger.Error(err, logger.NewField("remote", r.RemoteAddr))
			return
		}
		defer ws.Close()

		appLogger.Info("client connected",
			logger.NewField("remote", r.RemoteAddr),
			logger.NewField("api_key", r.URL.Query().Get("api_key")),
		)

		s := &session{
			subscribed:  make(map[string]*instrument),
			basePrice:   *basePrice,
			priceSpread: *priceSpread,
		}
		done := make(chan struct{})
		go readControl(ws, s, appLogger, done)
		writeFrames(ws, s, appLogger, done, *interval, *heartbeat)

		appLogger.Info("client disconnected", logger.NewField("remote", r.RemoteAddr))
	})

	srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("feed simulator listening", logger.NewField("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error(err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func readControl(ws *websocket.Conn, s *session, log logger.Interface, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var msg control
		if err := sonic.Unmarshal(data, &msg); err != nil {
			log.Warn("ignoring control message", logger.NewField("error", err.Error()))
			continue
		}

		switch msg.A {
		case "subscribe", "unsubscribe":
			var ids []uint64
			if err := sonic.Unmarshal(msg.V, &ids); err != nil {
				log.Warn("ignoring control message", logger.NewField("error", err.Error()))
				continue
			}
			if msg.A == "subscribe" {
				s.subscribe(ids)
			} else {
				s.unsubscribe(ids)
			}
			log.Debug(msg.A, logger.NewField("instruments", ids))
		case "mode":
			// every mode gets full depth
		default:
			log.Warn("unknown control action", logger.NewField("action", msg.A))
		}
	}
}

func writeFrames(ws *websocket.Conn, s *session, log logger.Interface, done <-chan struct{}, interval, heartbeat time.Duration) {
	frames := time.NewTicker(interval)
	defer frames.Stop()
	beats := time.NewTicker(heartbeat)
	defer beats.Stop()

	for {
		select {
		case <-done:
			return
		case <-beats.C:
			if err := ws.WriteMessage(websocket.BinaryMessage, []byte{0}); err != nil {
				return
			}
		case now := <-frames.C:
			frame := s.nextFrame(now.UTC())
			if len(frame) == 0 {
				continue
			}
			data, err := sonic.Marshal(frame)
			if err != nil {
				log.Error(err)
				continue
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}
