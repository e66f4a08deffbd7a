package server

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"telemetry-dashboard-go/internal/api"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Server struct {
	mux       *http.ServeMux
	tmpl      *template.Template
	api       *api.Client
	clients   map[*websocket.Conn]bool
	clientsMu sync.RWMutex
	broadcast chan interface{}
}

func New() *Server {
	funcMap := template.FuncMap{
		"toJSON": toJSON,
		"formatTime": func(ts string) string {
			t, err := time.Parse(time.RFC3339, ts)
			if err != nil {
				return ts
			}
			return t.Local().Format("2006-01-02 15:04:05")
		},
	}

	tmpl := template.Must(template.New("base").Funcs(funcMap).ParseGlob("templates/*.html"))

	s := &Server{
		mux:       http.NewServeMux(),
		tmpl:      tmpl,
		api:       api.New(),
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan interface{}, 256),
	}

	s.routes()
	go s.handleBroadcast()
	go s.periodicUpdate()

	return s
}

func (s *Server) routes() {
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/devices/", s.handleDevice)
	s.mux.HandleFunc("/", s.handleDevices)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
		conn.Close()
	}()

	// Send the init payload before registering the connection, so the
	// broadcast goroutine can never write to it concurrently.
	devices, _ := s.api.Devices(context.Background())
	conn.WriteJSON(map[string]interface{}{
		"type": "init",
		"data": devices,
	})

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *Server) handleBroadcast() {
	for msg := range s.broadcast {
		s.clientsMu.RLock()
		for conn := range s.clients {
			if err := conn.WriteJSON(msg); err != nil {
				conn.Close()
				delete(s.clients, conn)
			}
		}
		s.clientsMu.RUnlock()
	}
}

// Derived statuses drift with elapsed time even when no readings
// arrive, so connected clients get a periodic refresh.
func (s *Server) periodicUpdate() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		devices, err := s.api.Devices(context.Background())
		if err != nil {
			continue
		}

		s.broadcast <- map[string]interface{}{
			"type": "update",
			"data": devices,
		}
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health, err := s.api.Health(ctx)
	status := "offline"
	if err == nil && health != nil && health.Status == "ok" {
		status = "online"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	devices, err := s.api.Devices(ctx)
	if err != nil {
		log.Println("device list error:", err)
	}

	data := map[string]interface{}{
		"Title":       "Device Telemetry Dashboard",
		"Devices":     devices,
		"DevicesJSON": toJSON(devices),
		"APIStatus":   s.status(ctx),
	}

	s.render(w, "devices.html", data)
}

func (s *Server) handleDevice(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/devices/")
	id, err := strconv.ParseInt(strings.TrimSuffix(rest, "/"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var submitErr string
	if r.Method == http.MethodPost {
		power, perr := strconv.ParseFloat(r.FormValue("powerUsageKw"), 64)
		if perr != nil {
			submitErr = "power usage must be a number"
		} else if _, rerr := s.api.RecordReading(ctx, id, power, r.FormValue("timestamp")); rerr != nil {
			submitErr = rerr.Error()
		} else {
			http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
			return
		}
	}

	devices, _ := s.api.Devices(ctx)
	var name, site, status string
	for _, d := range devices {
		if d.ID == id {
			name, site, status = d.Name, d.Site, d.Status
			break
		}
	}
	if name == "" {
		http.NotFound(w, r)
		return
	}

	readings, err := s.api.Readings(ctx, id, 20)
	if err != nil {
		log.Println("readings error:", err)
	}

	data := map[string]interface{}{
		"Title":     name,
		"DeviceID":  id,
		"Name":      name,
		"Site":      site,
		"Status":    status,
		"Readings":  readings,
		"Error":     submitErr,
		"APIStatus": s.status(ctx),
	}

	s.render(w, "device.html", data)
}

func (s *Server) status(ctx context.Context) string {
	if h, err := s.api.Health(ctx); err == nil && h != nil {
		return "online"
	}
	return "offline"
}

func toJSON(v interface{}) template.JS {
	b, _ := json.Marshal(v)
	return template.JS(b)
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Println("render error:", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
