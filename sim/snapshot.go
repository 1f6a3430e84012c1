package sim

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/obstacle"
)

// Fingerprint hashes the bit patterns of every character position and
// velocity. Two runs fed the same input produce the same value.
func (s *Simulation) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	write := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	for _, c := range s.characters {
		p, v := c.Position(), c.Velocity()
		write(p.X)
		write(p.Y)
		write(v.X)
		write(v.Y)
	}
	return h.Sum64()
}

type CharacterState struct {
	ID       string    `yaml:"id"`
	Position geom.Vec2 `yaml:"position"`
	Velocity geom.Vec2 `yaml:"velocity"`
	Size     geom.Vec2 `yaml:"size"`
	Grounded bool      `yaml:"grounded"`
	Dragged  bool      `yaml:"dragged"`
}

// State is a point-in-time copy of the simulation.
type State struct {
	Step        uint64              `yaml:"step"`
	Time        float64             `yaml:"time"`
	Fingerprint string              `yaml:"fingerprint"`
	WorldSize   geom.Vec2           `yaml:"world_size"`
	Characters  []CharacterState    `yaml:"characters"`
	Windows     []geom.AABB         `yaml:"windows,omitempty"`
	Obstacles   []obstacle.Obstacle `yaml:"obstacles"`
}

func (s *Simulation) State() State {
	st := State{
		Step:        s.steps,
		Time:        s.elapsed,
		Fingerprint: fmt.Sprintf("%016x", s.Fingerprint()),
		WorldSize:   s.world.Size,
		Characters:  make([]CharacterState, 0, len(s.characters)),
		Windows:     append([]geom.AABB(nil), s.windows...),
		Obstacles:   make([]obstacle.Obstacle, 0, len(s.world.Obstacles)),
	}
	for _, c := range s.characters {
		st.Characters = append(st.Characters, CharacterState{
			ID:       c.ID().String(),
			Position: c.Position(),
			Velocity: c.Velocity(),
			Size:     c.Size(),
			Grounded: c.Grounded(),
			Dragged:  c.Dragged(),
		})
	}
	for _, o := range s.world.Obstacles {
		st.Obstacles = append(st.Obstacles, o.Clone())
	}
	return st
}

// Snapshot renders State as YAML.
func (s *Simulation) Snapshot() ([]byte, error) {
	out, err := yaml.Marshal(s.State())
	if err != nil {
		return nil, fmt.Errorf("sim: marshal snapshot: %w", err)
	}
	return out, nil
}
