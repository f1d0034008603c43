package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/avik-s/PrizePicker/internal/shared/config"
	"github.com/avik-s/PrizePicker/internal/shared/logger"
	"github.com/avik-s/PrizePicker/pkg/contracts/events"
	"github.com/avik-s/PrizePicker/pkg/oddsmath"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	// Catálogo fixo de jogadores simulados para geração de quotes
	playerCatalog = []events.PropQuoteUpdate{
		{Player: "Jayson Tatum", Team: "BOS - SF", Sport: "NBA", PropType: "Points", PlayerImage: "https://cdn.example.com/nba/tatum.png"},
		{Player: "Luka Doncic", Team: "DAL - PG", Sport: "NBA", PropType: "Points", PlayerImage: "https://cdn.example.com/nba/doncic.png"},
		{Player: "Nikola Jokic", Team: "DEN - C", Sport: "NBA", PropType: "Rebounds", PlayerImage: "https://cdn.example.com/nba/jokic.png"},
		{Player: "Tyrese Haliburton", Team: "IND - PG", Sport: "NBA", PropType: "Assists", PlayerImage: "https://cdn.example.com/nba/haliburton.png"},
		{Player: "Josh Allen", Team: "BUF - QB", Sport: "NFL", PropType: "Passing Yards", PlayerImage: "https://cdn.example.com/nfl/allen.png"},
		{Player: "Tyreek Hill", Team: "MIA - WR", Sport: "NFL", PropType: "Receiving Yards", PlayerImage: "https://cdn.example.com/nfl/hill.png"},
	}

	// Linha base de cada prop do catálogo (perturbada a cada ciclo)
	baseLines = []float64{27.5, 28.5, 12.5, 9.5, 249.5, 74.5}

	// Métricas Prometheus para monitoramento de conexões e mensagens
	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scraper_ws_connections",
		Help: "Clientes WebSocket conectados",
	})
	wsMessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scraper_ws_messages_sent_total",
		Help: "Total de mensagens WS enviadas",
	})
)

// Representa uma conexão de cliente WebSocket
// id: identificador único da conexão
// conn: ponteiro para a conexão WebSocket
type clientConn struct {
	id   string
	conn *websocket.Conn
}

// Estrutura responsável por gerenciar os clientes conectados via WebSocket
// e realizar broadcast de mensagens para todos eles.
type hub struct {
	mu      sync.RWMutex
	clients map[string]*clientConn
	log     *zap.Logger
}

// Cria uma nova instância de hub para gerenciar conexões
func newHub(log *zap.Logger) *hub {
	return &hub{
		clients: make(map[string]*clientConn),
		log:     log,
	}
}

// Adiciona um novo cliente ao hub e incrementa a métrica de conexões
func (h *hub) add(c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	wsConnections.Inc()
	h.log.Info("ws client connected", zap.String("client_id", c.id))
}

// Remove um cliente do hub e decrementa a métrica de conexões
func (h *hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; ok {
		delete(h.clients, id)
		wsConnections.Dec()
		h.log.Info("ws client disconnected", zap.String("client_id", id))
	}
}

// Envia uma mensagem para todos os clientes conectados
func (h *hub) broadcast(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	msg, _ := json.Marshal(v)
	for id, c := range h.clients {
		c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Warn("ws write failed", zap.String("client_id", id), zap.Error(err))
			_ = c.conn.Close()
		} else {
			wsMessagesSent.Inc()
		}
	}
}

// gera número aleatório entre min e max
func rnd(min, max float64) float64 {
	return (rand.Float64() * (max - min)) + min
}

// americanOdd sorteia uma odd americana plausível, evitando a faixa inválida
// entre -100 e +100
func americanOdd() float64 {
	if rand.Intn(2) == 0 {
		return rnd(-220, -102) // favorito
	}
	return rnd(100, 170) // azarão
}

// round2 arredonda para duas casas decimais
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// quote gera uma leitura simulada de mercado para o jogador i do catálogo:
// odds americanas aleatórias em torno de -110, linha FanDuel perturbada e
// linha PrizePicks defasada em até meio ponto (às vezes mais, para exercitar
// o corte de tolerância do motor).
func quote(i, version int, source string) events.PropQuoteUpdate {
	q := playerCatalog[i]

	overOdd := americanOdd()
	underOdd := americanOdd()
	fairOver, fairUnder := oddsmath.FairFromAmerican(overOdd, underOdd)

	fdLine := baseLines[i] + float64(rand.Intn(3)-1) // -1, 0 ou +1 ponto
	ppLine := fdLine
	switch rand.Intn(4) {
	case 0:
		ppLine += 0.5
	case 1:
		ppLine -= 0.5
	case 2:
		ppLine += 1.5 // fora da tolerância: o motor descarta
	}

	q.FanDuelLine = strconv.FormatFloat(fdLine, 'f', 1, 64)
	q.PrizePicksLine = strconv.FormatFloat(ppLine, 'f', 1, 64)
	q.FDOverOdds = round2(overOdd)
	q.FDUnderOdds = round2(underOdd)
	q.FDFairOverPct = round2(fairOver * 100)
	q.FDFairUnderPct = round2(fairUnder * 100)
	q.Source = source
	q.ScrapedAt = time.Now().UTC()
	q.Version = version
	return q
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	rand.Seed(time.Now().UnixNano())

	prometheus.MustRegister(wsConnections, wsMessagesSent)

	h := newHub(log)

	// Gera e envia quotes simuladas para todos os clientes conectados a cada 3 segundos
	go func() {
		ticker := time.NewTicker(3 * time.Second)
		defer ticker.Stop()
		version := 1
		for range ticker.C {
			for i := range playerCatalog {
				h.broadcast(quote(i, version, cfg.ServiceName))
			}
			version++
		}
	}()

	// ==== MUX PÚBLICO (HTTP principal): /ws
	appMux := http.NewServeMux()

	appMux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("ws upgrade failed", zap.Error(err))
			return
		}
		id := fmt.Sprintf("%d", time.Now().UnixNano())
		c := &clientConn{id: id, conn: conn}
		h.add(c)

		// Goroutine para manter a conexão viva e remover cliente ao desconectar
		go func() {
			defer func() {
				h.remove(id)
				_ = conn.Close()
			}()
			_ = conn.SetReadDeadline(time.Time{})
			for {
				// Lê e descarta mensagens do cliente para manter o socket limpo
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	// ==== MUX DE MÉTRICAS (/healthz, /metrics)
	metricsMux := http.NewServeMux()
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	metricsMux.Handle("/metrics", promhttp.Handler())

	// Servidor de métricas em goroutine
	go func() {
		metricsAddr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("scraper simulator (metrics) running",
			zap.String("addr", metricsAddr),
			zap.String("paths", "/healthz,/metrics"),
		)
		if err := http.ListenAndServe(metricsAddr, metricsMux); err != nil {
			log.Fatal("metrics server error", zap.Error(err))
		}
	}()

	// Servidor público (feed WS)
	publicAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	log.Info("scraper simulator (public) running",
		zap.String("addr", publicAddr),
		zap.String("paths", "/ws"),
	)
	if err := http.ListenAndServe(publicAddr, appMux); err != nil {
		log.Fatal("public server error", zap.Error(err))
	}
}
