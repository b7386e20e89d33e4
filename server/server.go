// Package server is the single-page, single-websocket external interface:
// it drives the orchestrator's animation loop, pushes rendered frames and
// optimizer protocol messages to the one connected browser tab, and reads
// brush strokes and process/cancel control requests back from it.
package server

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	channerics "github.com/niceyeti/channerics/channels"

	"github.com/obamify/pixelmorph/assignment"
	"github.com/obamify/pixelmorph/drawing"
	"github.com/obamify/pixelmorph/mathx"
	"github.com/obamify/pixelmorph/orchestrator"
	"github.com/obamify/pixelmorph/server/wspush"
)

// frameRate is how often the animation loop steps and rasterizes while a
// preset is loaded.
const frameRate = time.Second / 60

// Event is the single outbound tagged union pushed to the browser: either
// an animation frame or one of assignment.Message's variants, flattened
// into one JSON shape so the single websocket only ever carries one type.
type Event struct {
	Kind string `json:"kind"`

	// kind == "frame" / "update_preview"
	Width, Height int    `json:"width,omitempty"`
	Pixels        []byte `json:"pixels,omitempty"`

	// kind == "progress"
	Progress float64 `json:"progress,omitempty"`

	// kind == "update_assignments"
	Assignments []int `json:"assignments,omitempty"`

	// kind == "done"
	Done *assignment.Result `json:"done,omitempty"`

	// kind == "error"
	Err string `json:"error,omitempty"`
}

func eventFromMessage(msg assignment.Message) Event {
	switch msg.Kind {
	case assignment.KindProgress:
		return Event{Kind: "progress", Progress: msg.Progress}
	case assignment.KindPreview:
		return Event{
			Kind:   "update_preview",
			Width:  msg.PreviewWidth,
			Height: msg.PreviewHeight,
			Pixels: flattenRGB(msg.PreviewPixels),
		}
	case assignment.KindUpdateAssignments:
		return Event{Kind: "update_assignments", Assignments: msg.Assignments}
	case assignment.KindDone:
		return Event{Kind: "done", Done: msg.Done}
	case assignment.KindError:
		return Event{Kind: "error", Err: msg.Err}
	case assignment.KindCancelled:
		return Event{Kind: "cancelled"}
	default:
		return Event{Kind: "error", Err: fmt.Sprintf("server: unknown message kind %d", msg.Kind)}
	}
}

// flattenRGB packs an RGB buffer into W*H*3 raw bytes, matching §6's
// "data: RGB bytes length W*H*3" wire shape.
func flattenRGB(pixels []mathx.RGB) []byte {
	out := make([]byte, 0, len(pixels)*3)
	for _, p := range pixels {
		out = append(out, p[0], p[1], p[2])
	}
	return out
}

// ControlRequest is the single inbound tagged union: a brush stroke
// sample, a process/cancel optimizer control request, or a mode switch.
type ControlRequest struct {
	Type string `json:"type"`

	// type == "brush"
	Position int `json:"position"`
	StrokeID int `json:"strokeId"`

	// type == "process"
	Settings assignment.GenerationSettings `json:"settings"`

	// type == "mode"
	Mode string `json:"mode"` // "transform" | "draw"
}

// Server serves index.html and the single /ws endpoint.
type Server struct {
	addr              string
	orch              *orchestrator.Orchestrator
	defaultGeneration assignment.GenerationSettings
}

// New builds a Server bound to addr, driving orch's animation loop.
// defaultGeneration is applied to "process" requests that arrive with no
// ID set, per config.yaml's optional defaultGeneration section.
func New(addr string, orch *orchestrator.Orchestrator, defaultGeneration assignment.GenerationSettings) *Server {
	return &Server{addr: addr, orch: orch, defaultGeneration: defaultGeneration}
}

// Serve blocks, serving index.html and /ws until the process exits or
// ListenAndServe returns an error.
func (s *Server) Serve() error {
	http.HandleFunc("/", s.serveIndex)
	http.HandleFunc("/ws", s.serveWebsocket)

	if err := http.ListenAndServe(s.addr, nil); err != nil {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	t := template.Must(template.New("index.html").Parse(indexTemplate))
	if err := t.Execute(w, nil); err != nil {
		_, _ = w.Write([]byte(err.Error()))
	}
}

// indexTemplate is a minimal control page; the real UI shell (control
// panels, file pickers) is out of scope per spec.md §1, stubbed as a
// single inline string matching root_view's template-building style.
const indexTemplate = `<!doctype html>
<html><head><title>pixelmorph</title></head>
<body><canvas id="stage"></canvas>
<script>
  const ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = (ev) => { /* UI shell consumes Event JSON here */ };
</script>
</body></html>`

// serveWebsocket upgrades the single connection this prototype supports,
// wiring the orchestrator's animation loop and optimizer sessions to it.
func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	events := make(chan Event, 16)
	controls := make(chan ControlRequest, 16)

	done := make(chan struct{})
	defer close(done)

	go s.animate(done, events)
	go s.handleControls(done, controls, events)

	cli, err := wspush.New[Event, ControlRequest](events, controls, w, r)
	if err != nil {
		return
	}
	if err := cli.Sync(); err != nil {
		log.Printf("server: websocket session ended: %v", err)
	}
}

// animate steps and rasterizes the orchestrator's live simulation at
// frameRate, pushing each frame as an Event, until done is closed.
func (s *Server) animate(done <-chan struct{}, events chan<- Event) {
	ticker := channerics.NewTicker(done, frameRate)
	for range ticker {
		s.orch.Step()
		img := s.orch.Rasterize()
		if img == nil {
			continue
		}
		select {
		case events <- Event{Kind: "frame", Width: img.Rect.Dx(), Height: img.Rect.Dy(), Pixels: img.Pix}:
		case <-done:
			return
		default:
			// Drop the frame if the publish side is still busy with a
			// previous one; animation frames are idempotent.
		}
	}
}

// handleControls dispatches inbound ControlRequests: brush samples feed
// the drawing solver's State, "process" requests start a fresh optimizer
// session (whose assignment.Message stream is translated to Events and
// forwarded onto events), and "mode" requests toggle transform/draw.
func (s *Server) handleControls(done <-chan struct{}, controls <-chan ControlRequest, events chan<- Event) {
	for {
		select {
		case <-done:
			return
		case req, ok := <-controls:
			if !ok {
				return
			}
			s.dispatch(req, events)
		}
	}
}

func (s *Server) dispatch(req ControlRequest, events chan<- Event) {
	switch req.Type {
	case "brush":
		s.orch.ApplyEdits([]drawing.Edit{{Position: req.Position, StrokeID: req.StrokeID}})
	case "mode":
		m := orchestrator.ModeTransform
		if req.Mode == "draw" {
			m = orchestrator.ModeDraw
		}
		raw := make(chan assignment.Message, 16)
		go forwardMessages(raw, events)
		s.orch.SetMode(m, nil, req.Settings.ProximityImportance, req.Settings.ID, raw)
	case "process":
		settings := req.Settings
		if settings.ID == "" {
			settings = s.defaultGeneration
		}
		raw := make(chan assignment.Message, 16)
		go forwardMessages(raw, events)
		s.orch.StartOptimize(settings, nil, 0, 0, nil, raw)
	case "cancel":
		s.orch.CancelOptimize()
	}
}

func forwardMessages(raw <-chan assignment.Message, events chan<- Event) {
	for msg := range raw {
		events <- eventFromMessage(msg)
	}
}

