// Package app orchestrates the local practice pipeline: camera capture,
// motion gating, hand detection, and the per-frame recitation session.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/naufalhakim/iqro-isyarat/internal/capture"
	"github.com/naufalhakim/iqro-isyarat/internal/curriculum"
	"github.com/naufalhakim/iqro-isyarat/internal/detector"
	"github.com/naufalhakim/iqro-isyarat/internal/hook"
	"github.com/naufalhakim/iqro-isyarat/internal/session"
	"github.com/naufalhakim/iqro-isyarat/internal/stability"
	"github.com/naufalhakim/iqro-isyarat/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while the scene is still.
	IdleFPS = 5
	// ActiveFPS is the frame rate while hands are moving.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without motion before dropping back to idle.
	IdleTimeoutMs = 2000
	// HookTimeoutMs bounds each feedback hook invocation.
	HookTimeoutMs = 5000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	Curriculum   *curriculum.Curriculum
	Stability    stability.Config
	CooldownMs   int64
	HookDir      string
	CameraID     int
	MotionThresh float64
	Detection    detector.Config
}

// App runs the local camera practice loop and dispatches feedback hooks.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	session  *session.Session
	hookMgr  *hook.Manager
	hookExec *hook.Executor
	enabled  bool
	mu       sync.RWMutex
	stopCh   chan struct{}
	onUpdate func(session.Update)
}

// New creates an App and its backing practice session.
func New(config Config) (*App, error) {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // default: 1% pixel change
	}

	sess, err := session.New(session.Config{
		Curriculum: config.Curriculum,
		Stability:  config.Stability,
		CooldownMs: config.CooldownMs,
		Store:      config.Store,
		ClientInfo: "local-camera",
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		config:   config,
		camera:   capture.NewCamera(config.CameraID),
		motion:   capture.NewMotionDetector(motionThreshold),
		session:  sess,
		hookMgr:  hook.NewManager(config.HookDir),
		hookExec: hook.NewExecutor(HookTimeoutMs),
	}

	// Try MediaPipe first, fall back to mock detector.
	if mp, err := detector.NewMediaPipeDetector(config.Detection); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a, nil
}

// SetEnabled enables or disables local gesture practice.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether local practice is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetOnUpdate registers a callback invoked for every processed frame.
// Must be set before Start.
func (a *App) SetOnUpdate(fn func(session.Update)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUpdate = fn
}

// DiscoverHooks scans the hook directory for feedback hooks.
func (a *App) DiscoverHooks() error {
	return a.hookMgr.Discover()
}

// Start opens the camera and begins the practice pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Practice pipeline started")
	return nil
}

// Stop halts the pipeline and releases camera and detector resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if err := a.session.Close(); err != nil {
		log.Printf("Error closing session: %v", err)
	}

	log.Println("Practice pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Session returns the local practice session.
func (a *App) Session() *session.Session {
	return a.session
}

// HookManager returns the feedback hook manager.
func (a *App) HookManager() *hook.Manager {
	return a.hookMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

func (a *App) dispatchHooks(update session.Update) {
	result := update.Result
	if result == nil || update.Stable == nil {
		return
	}

	req := &hook.Request{
		Event:      hook.EventAttempt,
		SessionID:  a.session.ID(),
		AyatIndex:  result.AyatIndex,
		ChunkIndex: result.ChunkIndex,
		Chunk:      result.Chunk,
		Zona:       update.Stable.Zona,
		Harakat:    update.Stable.Harakat,
		Correct:    result.Correct,
		IsSyaddah:  update.Stable.IsSyaddah,
	}
	a.hookExec.Dispatch(a.hookMgr, req)

	if result.AyatComplete {
		complete := *req
		complete.Event = hook.EventAyatComplete
		a.hookExec.Dispatch(a.hookMgr, &complete)
	}
	if result.SurahComplete {
		complete := *req
		complete.Event = hook.EventSurahComplete
		a.hookExec.Dispatch(a.hookMgr, &complete)
	}
}

func nowMs() int64 {
	return time.Now().UnixMilli()
}
