package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/naufalhakim/iqro-isyarat/internal/app"
	"github.com/naufalhakim/iqro-isyarat/internal/audio"
	"github.com/naufalhakim/iqro-isyarat/internal/config"
	"github.com/naufalhakim/iqro-isyarat/internal/curriculum"
	"github.com/naufalhakim/iqro-isyarat/internal/detector"
	"github.com/naufalhakim/iqro-isyarat/internal/server"
	"github.com/naufalhakim/iqro-isyarat/internal/stability"
	"github.com/naufalhakim/iqro-isyarat/internal/store"
	"github.com/naufalhakim/iqro-isyarat/internal/tray"
)

func main() {
	fmt.Println("Iqro Isyarat - Gesture Recitation Tutor")

	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Paths.Database), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.Paths.Database)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	curr := curriculum.Default()
	if cfg.Paths.Curriculum != "" {
		curr, err = curriculum.Load(cfg.Paths.Curriculum)
		if err != nil {
			log.Fatalf("Failed to load curriculum: %v", err)
		}
	}
	fmt.Printf("Curriculum: %s (%d ayat, %d chunks)\n", curr.Name, len(curr.Ayat), curr.TotalChunks())

	catalog := audio.NewCatalog(cfg.Paths.AudioDir)
	if n, err := catalog.Warm(); err != nil {
		log.Printf("Warming audio catalog: %v", err)
	} else if n > 0 {
		fmt.Printf("Loaded %d pronunciation clips\n", n)
	}

	stabilityCfg := stability.Config{
		MinConfidence:   cfg.Stability.MinConfidence,
		ZoneStabilityMs: cfg.Stability.ZoneStabilityMs,
		SyaddahHoldMs:   cfg.Stability.SyaddahHoldMs,
	}

	a, err := app.New(app.Config{
		Store:        st,
		Curriculum:   curr,
		Stability:    stabilityCfg,
		CooldownMs:   cfg.Engine.CooldownMs,
		HookDir:      cfg.Paths.HookDir,
		CameraID:     cfg.Camera.Device,
		MotionThresh: cfg.Camera.MotionThreshold,
		Detection: detector.Config{
			MaxHands:      cfg.Detection.MaxHands,
			MinConfidence: cfg.Detection.MinConfidence,
		},
	})
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if err := a.DiscoverHooks(); err != nil {
		log.Printf("Discovering hooks: %v", err)
	} else if hooks := a.HookManager().List(); len(hooks) > 0 {
		fmt.Printf("Discovered %d feedback hooks\n", len(hooks))
	}

	webDir := cfg.Paths.WebDir
	if webDir == "" {
		webDir = findWebDir()
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir:  webDir,
		Store:      st,
		Curriculum: curr,
		Audio:      catalog,
		Stability:  stabilityCfg,
		CooldownMs: cfg.Engine.CooldownMs,
		Camera:     a.Camera(),
		Practice:   a.Session(),
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Server.Addr)
		if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	a.SetEnabled(true)
	if err := a.Start(); err != nil {
		log.Printf("Camera practice unavailable: %v", err)
	}

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnOpen(func() {
		openBrowser("http://localhost" + cfg.Server.Addr)
	})
	t.OnQuit(func() {
		a.Stop()
	})
	t.Run()
}

// findWebDir searches for the web directory in common locations.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	webDir := filepath.Join(config.XDGDataHome(), "iqro-isyarat", "web")
	if info, err := os.Stat(webDir); err == nil && info.IsDir() {
		return webDir
	}

	return ""
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
