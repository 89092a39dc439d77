// Package surfview streams live simulation frames to external viewers over
// websockets. The simulation itself stays single threaded: one serve
// goroutine owns the solver and broadcasts a compact half-float snapshot of
// the field after each batch of timesteps, while viewers send small JSON
// control messages back (pause, speed).
package surfview

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/soypat/surfgrid/render"
)

// A Simulation is stepped by the server between frames. Field must return a
// stable view of the current state; only the [Server.Run] goroutine touches
// the simulation, and it reads the field only after Step returns, matching
// the solvers' update/read cadence.
type Simulation interface {
	Step()
	Field() render.HeightField
}

// control is the JSON message viewers send to adjust the running server.
type control struct {
	Paused        *bool `json:"paused,omitempty"`
	StepsPerFrame *int  `json:"stepsPerFrame,omitempty"`
}

// Server broadcasts simulation frames to all connected websocket viewers.
type Server struct {
	settings Settings
	sim      Simulation

	paused        atomic.Bool
	stepsPerFrame atomic.Int64
	step          atomic.Uint32
	// lastFrame holds the most recently encoded frame. Connecting viewers
	// are served from it so connection handlers never read the simulation
	// while the Run goroutine is stepping it.
	lastFrame atomic.Pointer[[]byte]

	clientsMu sync.RWMutex
	// Each connection carries its own write mutex: gorilla/websocket
	// forbids concurrent writers on one connection.
	clients map[*websocket.Conn]*sync.Mutex

	upgrader websocket.Upgrader
}

// NewServer wires a simulation to the given settings. Run it with
// [Server.ListenAndServe], or mount [Server.Handler] on an existing mux and
// call [Server.Run] yourself.
func NewServer(settings Settings, sim Simulation) *Server {
	settings.applyDefaults()
	sv := &Server{
		settings: settings,
		sim:      sim,
		clients:  make(map[*websocket.Conn]*sync.Mutex),
		upgrader: websocket.Upgrader{
			// Viewer pages are typically served from another origin
			// during development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	sv.stepsPerFrame.Store(int64(settings.StepsPerFrame))
	// No Run goroutine exists yet, so reading the simulation here is safe.
	frame := EncodeFrame(0, sim.Field())
	sv.lastFrame.Store(&frame)
	return sv
}

// Handler returns the websocket upgrade endpoint.
func (sv *Server) Handler() http.Handler {
	return http.HandlerFunc(sv.handleWebSocket)
}

// ListenAndServe runs the simulation loop and serves the websocket endpoint
// at /ws until the listener fails. It blocks; the simulation loop stops when
// it returns.
func (sv *Server) ListenAndServe() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sv.Run(ctx)
	mux := http.NewServeMux()
	mux.Handle("/ws", sv.Handler())
	logger().Info("surfview listening", "addr", sv.settings.Addr)
	return http.ListenAndServe(sv.settings.Addr, mux)
}

// Run executes the simulation loop: every update interval it advances the
// simulation by the configured number of timesteps and broadcasts one frame.
// It is the only goroutine that touches the simulation. Run blocks until ctx
// is canceled; run it in its own goroutine when composing manually.
func (sv *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(sv.settings.updateInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if sv.paused.Load() {
			continue
		}
		steps := int(sv.stepsPerFrame.Load())
		for i := 0; i < steps; i++ {
			sv.sim.Step()
		}
		step := sv.step.Add(uint32(steps))
		frame := EncodeFrame(step, sv.sim.Field())
		sv.lastFrame.Store(&frame)
		sv.broadcast(frame)
	}
}

// Pause suspends or resumes stepping. Viewers can do the same through a
// control message.
func (sv *Server) Pause(paused bool) { sv.paused.Store(paused) }

func (sv *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := sv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger().Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	sv.clientsMu.Lock()
	sv.clients[conn] = connMu
	sv.clientsMu.Unlock()
	defer func() {
		sv.clientsMu.Lock()
		delete(sv.clients, conn)
		sv.clientsMu.Unlock()
	}()
	logger().Info("viewer connected", "remote", conn.RemoteAddr())

	// Send the latest broadcast frame immediately so a viewer that
	// connects while paused still has something to draw. The cached copy
	// keeps this handler off the simulation, which the Run goroutine may
	// be stepping right now.
	connMu.Lock()
	err = conn.WriteMessage(websocket.BinaryMessage, *sv.lastFrame.Load())
	connMu.Unlock()
	if err != nil {
		return
	}

	for {
		var msg control
		if err := conn.ReadJSON(&msg); err != nil {
			logger().Info("viewer disconnected", "remote", conn.RemoteAddr(), "err", err)
			return
		}
		if msg.Paused != nil {
			sv.paused.Store(*msg.Paused)
		}
		if msg.StepsPerFrame != nil && *msg.StepsPerFrame > 0 {
			sv.stepsPerFrame.Store(int64(*msg.StepsPerFrame))
		}
	}
}

// broadcast writes frame to every connected viewer, dropping clients whose
// writes fail.
func (sv *Server) broadcast(frame []byte) {
	sv.clientsMu.RLock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(sv.clients))
	for c, mu := range sv.clients {
		conns[c] = mu
	}
	sv.clientsMu.RUnlock()

	var dead []*websocket.Conn
	for conn, mu := range conns {
		mu.Lock()
		err := conn.WriteMessage(websocket.BinaryMessage, frame)
		mu.Unlock()
		if err != nil {
			dead = append(dead, conn)
		}
	}
	if len(dead) > 0 {
		sv.clientsMu.Lock()
		for _, conn := range dead {
			delete(sv.clients, conn)
			conn.Close()
		}
		sv.clientsMu.Unlock()
	}
}
