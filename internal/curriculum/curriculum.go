// Package curriculum holds the fixed recitation curriculum: ordered
// ayat decomposed into phonetic chunks, and the chunk-to-gesture
// lookup table. Loaded once at startup and read-only afterwards.
package curriculum

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed fatihah.toml
var defaultCurriculum []byte

// Gesture is the required joint hand pose for one chunk.
type Gesture struct {
	Zona    int `toml:"zona" json:"zona"`
	Harakat int `toml:"harakat" json:"harakat"`
}

// Ayat is one text unit: an ordered list of phonetic chunks.
type Ayat struct {
	Number int      `toml:"number" json:"number"`
	Arabic string   `toml:"arabic,omitempty" json:"arabic,omitempty"`
	Chunks []string `toml:"chunks" json:"chunks"`
}

// Curriculum is the full ordered curriculum plus the gesture mapping.
type Curriculum struct {
	Name    string             `toml:"name" json:"name"`
	Ayat    []Ayat             `toml:"ayat" json:"ayat"`
	Mapping map[string]Gesture `toml:"mapping" json:"mapping"`
}

// Expected returns the required gesture for a chunk. Chunks missing
// from the mapping table default to zona 1, harakat 1.
func (c *Curriculum) Expected(chunk string) Gesture {
	if g, ok := c.Mapping[chunk]; ok {
		return g
	}
	return Gesture{Zona: 1, Harakat: 1}
}

// TotalChunks returns the number of chunks across all ayat.
func (c *Curriculum) TotalChunks() int {
	total := 0
	for _, a := range c.Ayat {
		total += len(a.Chunks)
	}
	return total
}

// Load reads a curriculum from a TOML file.
func Load(path string) (*Curriculum, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum: %w", err)
	}
	return parse(data)
}

// Default returns the embedded Al-Fatihah curriculum.
func Default() *Curriculum {
	c, err := parse(defaultCurriculum)
	if err != nil {
		// The embedded curriculum is validated at build time by the
		// package tests; a parse failure here is a programming error.
		panic(fmt.Sprintf("embedded curriculum: %v", err))
	}
	return c
}

func parse(data []byte) (*Curriculum, error) {
	var c Curriculum
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode curriculum: %w", err)
	}

	if len(c.Ayat) == 0 {
		return nil, fmt.Errorf("curriculum %q has no ayat", c.Name)
	}
	for _, a := range c.Ayat {
		if len(a.Chunks) == 0 {
			return nil, fmt.Errorf("ayat %d has no chunks", a.Number)
		}
	}

	return &c, nil
}
