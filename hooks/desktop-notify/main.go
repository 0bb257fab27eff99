// Package main provides a desktop notification hook. It shows a
// notification when an ayat or the whole surah is completed.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Request represents the input from the hook executor.
type Request struct {
	Event      string `json:"event"`
	SessionID  string `json:"sessionId"`
	AyatIndex  int    `json:"ayatIndex"`
	ChunkIndex int    `json:"chunkIndex"`
	Chunk      string `json:"chunk"`
	Zona       int    `json:"zona"`
	Harakat    int    `json:"harakat"`
	Correct    bool   `json:"correct"`
	IsSyaddah  bool   `json:"isSyaddah"`
}

// Response represents the output to the hook executor.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(false, fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	var message string
	switch req.Event {
	case "ayat_complete":
		message = fmt.Sprintf("Ayat %d complete, well done!", req.AyatIndex+1)
	case "surah_complete":
		message = "Surah complete! Alhamdulillah."
	default:
		// Per-attempt events are too chatty for notifications.
		writeResponse(true, "")
		return
	}

	if err := notify("Iqro Isyarat", message); err != nil {
		writeResponse(false, err.Error())
		return
	}

	writeResponse(true, "")
}

func notify(title, message string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
		cmd = exec.Command("osascript", "-e", script)
	default:
		cmd = exec.Command("notify-send", title, message)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

func writeResponse(success bool, errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{
		Success: success,
		Error:   errMsg,
	})
}
