package overlay

import (
	"github.com/milk9111/desktopcharacters/behavior"
	"github.com/milk9111/desktopcharacters/sim"
)

// ReloadScript compiles the named follow script and installs it. On failure
// the running behaviour is kept.
func ReloadScript(s *sim.Simulation, name string) error {
	if name == "" {
		s.SetDecider(nil)
		return nil
	}
	script, err := behavior.Load(name)
	if err != nil {
		return err
	}
	s.SetDecider(script)
	return nil
}
