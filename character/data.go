package character

import "github.com/milk9111/desktopcharacters/common"

// Restitution holds the bounce coefficient for each contact side.
type Restitution struct {
	Sides float64 `yaml:"sides"`
	Roof  float64 `yaml:"roof"`
	Floor float64 `yaml:"floor"`
}

// Data is the movement tuning of a character.
type Data struct {
	MaxSpeed        float64     `yaml:"max_speed"`
	MaxJumpVelocity float64     `yaml:"max_jump_velocity"`
	Restitution     Restitution `yaml:"restitution"`
	FrictionFloor   float64     `yaml:"friction_floor"`
}

func DefaultData() Data {
	return Data{
		MaxSpeed:        1.5,
		MaxJumpVelocity: 6.0,
		Restitution:     Restitution{Sides: 0.2, Roof: 0.2, Floor: 0},
		FrictionFloor:   0.4,
	}
}

// normalized clamps restitution into [0, 1] so a bounce never adds energy,
// and rejects negative speeds and friction.
func (d Data) normalized() Data {
	d.Restitution.Sides = common.Clamp(d.Restitution.Sides, 0, 1)
	d.Restitution.Roof = common.Clamp(d.Restitution.Roof, 0, 1)
	d.Restitution.Floor = common.Clamp(d.Restitution.Floor, 0, 1)
	d.MaxSpeed = max(d.MaxSpeed, 0)
	d.MaxJumpVelocity = max(d.MaxJumpVelocity, 0)
	d.FrictionFloor = max(d.FrictionFloor, 0)
	return d
}
