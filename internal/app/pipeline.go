package app

import (
	"log"
	"time"

	"github.com/naufalhakim/iqro-isyarat/internal/reading"
)

// runPipeline is the frame loop for local practice. It idles at a low
// capture rate until motion appears, then runs hand detection and feeds
// the session until the scene goes still again.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			det := a.Detector()
			if !activeMode || det == nil {
				frame.Close()
				continue
			}

			landmarks, err := det.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			hands := make([]reading.Hand, 0, len(landmarks))
			for _, h := range landmarks {
				hands = append(hands, reading.FromLandmarks(h))
			}

			update := a.session.ProcessFrame(hands, nowMs())

			if update.Result != nil {
				if update.Result.Correct {
					log.Printf("Correct: %s (ayat %d, chunk %d)",
						update.Result.Chunk, update.Result.AyatIndex+1, update.Result.ChunkIndex+1)
				} else {
					log.Printf("Wrong gesture for %s: expected zona %d harakat %d",
						update.Result.Chunk, update.Result.Expected.Zona, update.Result.Expected.Harakat)
				}
				go a.dispatchHooks(update)
			}

			if fn := a.onUpdate; fn != nil {
				fn(update)
			}
		}
	}
}
