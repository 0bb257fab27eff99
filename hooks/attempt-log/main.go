// Package main provides an attempt log hook. It appends every
// evaluated attempt to a CSV file next to the hook, giving teachers a
// flat record they can open in a spreadsheet.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

const logFile = "attempts.csv"

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

	if req.Event != "attempt" {
		writeResponse(true, "")
		return
	}

	if err := appendAttempt(req); err != nil {
		writeResponse(false, err.Error())
		return
	}

	writeResponse(true, "")
}

func appendAttempt(req Request) error {
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := []string{
		time.Now().Format(time.RFC3339),
		req.SessionID,
		strconv.Itoa(req.AyatIndex),
		strconv.Itoa(req.ChunkIndex),
		req.Chunk,
		strconv.Itoa(req.Zona),
		strconv.Itoa(req.Harakat),
		strconv.FormatBool(req.Correct),
		strconv.FormatBool(req.IsSyaddah),
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	return w.Error()
}

func writeResponse(success bool, errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{
		Success: success,
		Error:   errMsg,
	})
}
