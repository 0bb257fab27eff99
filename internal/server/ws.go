package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/naufalhakim/iqro-isyarat/internal/audio"
	"github.com/naufalhakim/iqro-isyarat/internal/curriculum"
	"github.com/naufalhakim/iqro-isyarat/internal/detector"
	"github.com/naufalhakim/iqro-isyarat/internal/engine"
	"github.com/naufalhakim/iqro-isyarat/internal/reading"
	"github.com/naufalhakim/iqro-isyarat/internal/session"
	"github.com/naufalhakim/iqro-isyarat/internal/stability"
	"github.com/naufalhakim/iqro-isyarat/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // allow local connections
	},
}

// PracticeConfig holds what each practice connection is built from.
type PracticeConfig struct {
	Curriculum *curriculum.Curriculum
	Stability  stability.Config
	CooldownMs int64
	Store      *store.Store
	Audio      *audio.Catalog
}

// PracticeHandler upgrades connections to the practice socket. Each
// connection gets its own session: the browser runs hand tracking
// client-side and streams landmark frames up, the server streams
// readings, stable events, and evaluation results back.
type PracticeHandler struct {
	config PracticeConfig
}

// NewPracticeHandler creates a PracticeHandler with the given config.
func NewPracticeHandler(config PracticeConfig) *PracticeHandler {
	return &PracticeHandler{config: config}
}

// clientMessage is one inbound socket message.
type clientMessage struct {
	Type      string     `json:"type"`
	Hands     []wireHand `json:"hands,omitempty"`
	Timestamp int64      `json:"timestamp,omitempty"`
	Index     int        `json:"index"`
}

// wireHand is one hand as sent by the browser. Landmark points arrive
// either as {x,y,z} objects or bare [x,y,z] triples depending on the
// tracking frontend, so each point is decoded shape-tolerantly.
type wireHand struct {
	Points     []json.RawMessage `json:"points"`
	Handedness json.RawMessage   `json:"handedness"`
}

func (h wireHand) toHand() reading.Hand {
	points := make([]detector.Point3D, 0, len(h.Points))
	for _, raw := range h.Points {
		p, err := parsePoint(raw)
		if err != nil {
			continue
		}
		points = append(points, p)
	}
	return reading.Hand{
		Points:   points,
		Advisory: reading.ParseAdvisory(h.Handedness),
	}
}

func parsePoint(raw json.RawMessage) (detector.Point3D, error) {
	var p detector.Point3D
	if err := json.Unmarshal(raw, &p); err == nil {
		return p, nil
	}

	var triple []float64
	if err := json.Unmarshal(raw, &triple); err != nil {
		return p, err
	}
	if len(triple) < 2 {
		return p, errors.New("landmark point needs at least x and y")
	}
	p.X = triple[0]
	p.Y = triple[1]
	if len(triple) > 2 {
		p.Z = triple[2]
	}
	return p, nil
}

// stateMessage is the progression snapshot pushed after connect, goto,
// reset, and every evaluated result.
type stateMessage struct {
	Type   string               `json:"type"`
	State  engine.State         `json:"state"`
	Chunks []engine.ChunkStatus `json:"chunks"`
}

// resultMessage carries one evaluation outcome, with the pronunciation
// clip inlined when the chunk was matched and a clip exists.
type resultMessage struct {
	Type   string               `json:"type"`
	Result engine.Result        `json:"result"`
	Audio  string               `json:"audio,omitempty"`
	Format string               `json:"format,omitempty"`
	State  engine.State         `json:"state"`
	Chunks []engine.ChunkStatus `json:"chunks"`
}

// frameMessage echoes what the frame decoded to, for HUD rendering.
type frameMessage struct {
	Type     string                     `json:"type"`
	Frame    reading.DecodedFrame       `json:"frame"`
	Progress stability.Progress         `json:"progress"`
	Stable   *stability.StableZoneEvent `json:"stable,omitempty"`
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *PracticeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	sess, err := session.New(session.Config{
		Curriculum: h.config.Curriculum,
		Stability:  h.config.Stability,
		CooldownMs: h.config.CooldownMs,
		Store:      h.config.Store,
		ClientInfo: r.RemoteAddr,
	})
	if err != nil {
		log.Printf("create practice session: %v", err)
		return
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Printf("close practice session: %v", err)
		}
	}()

	conn.WriteJSON(map[string]any{
		"type":      "connected",
		"sessionId": sess.ID(),
		"state":     sess.State(),
		"chunks":    sess.AyatChunks(),
	})

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("practice socket read: %v", err)
			}
			return
		}

		switch msg.Type {
		case "landmarks":
			h.handleLandmarks(conn, sess, msg)

		case "goto":
			sess.GoToAyat(msg.Index)
			conn.WriteJSON(stateMessage{Type: "state", State: sess.State(), Chunks: sess.AyatChunks()})

		case "reset":
			sess.Reset()
			conn.WriteJSON(stateMessage{Type: "state", State: sess.State(), Chunks: sess.AyatChunks()})

		case "ping":
			conn.WriteJSON(map[string]string{"type": "pong"})

		default:
			conn.WriteJSON(map[string]string{"type": "error", "error": "unknown message type"})
		}
	}
}

func (h *PracticeHandler) handleLandmarks(conn *websocket.Conn, sess *session.Session, msg clientMessage) {
	hands := make([]reading.Hand, 0, len(msg.Hands))
	for _, wh := range msg.Hands {
		hands = append(hands, wh.toHand())
	}

	update := sess.ProcessFrame(hands, msg.Timestamp)

	conn.WriteJSON(frameMessage{
		Type:     "frame",
		Frame:    update.Frame,
		Progress: update.Progress,
		Stable:   update.Stable,
	})

	if update.Result == nil {
		return
	}

	out := resultMessage{
		Type:   "result",
		Result: *update.Result,
		State:  sess.State(),
		Chunks: sess.AyatChunks(),
	}

	if update.Result.ShouldPlayAudio && h.config.Audio != nil {
		clip, err := h.config.Audio.Get(update.Result.Chunk)
		if err == nil {
			out.Audio = clip
			out.Format = audio.Format
		} else if !errors.Is(err, audio.ErrNoAudio) {
			log.Printf("audio clip for %s: %v", update.Result.Chunk, err)
		}
	}

	conn.WriteJSON(out)
}
