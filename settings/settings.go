package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/echolume/echolume/game"
	"github.com/pelletier/go-toml"
)

// Settings contains all tunables for the simulation core.
type Settings struct {
	Player struct {
		Radius    float32
		Height    float32
		EyeHeight float32

		WalkSpeed   float32
		SprintSpeed float32
		JumpSpeed   float32
		Gravity     float32
		StepHeight  float32

		VelocitySweep bool
	}

	Scan struct {
		MaxDistance float32

		BurstRays      int
		AzimuthSteps   int
		ElevationSteps int

		ViewSamplesX int
		ViewSamplesY int

		SweepLines     int
		SweepColumns   int
		SweepDuration  float32
		SweepPitchSpan float32
	}

	Buffer struct {
		Capacity   int
		CellSize   float32
		MaxPerCell int
		Lifetime   float32

		MinIntensity float32
		MaxIntensity float32
		FadeEpsilon  float32

		BaseColorR float32
		BaseColorG float32
		BaseColorB float32
	}

	Index struct {
		// BudgetMs is the per-tick wall clock budget for spatial index builds.
		BudgetMs int
	}

	Camera struct {
		// FOV is the horizontal field of view in degrees.
		FOV    float32
		Aspect float32
	}
}

// DefaultSettings returns the default tuning for every component.
func DefaultSettings() Settings {
	s := Settings{}

	s.Player.Radius = game.DefaultCollisionRadius
	s.Player.Height = game.DefaultCollisionHeight
	s.Player.EyeHeight = game.DefaultEyeHeight
	s.Player.WalkSpeed = game.DefaultWalkSpeed
	s.Player.SprintSpeed = game.DefaultSprintSpeed
	s.Player.JumpSpeed = game.DefaultJumpSpeed
	s.Player.Gravity = game.DefaultGravity
	s.Player.StepHeight = game.DefaultStepHeight
	s.Player.VelocitySweep = true

	s.Scan.MaxDistance = 40
	s.Scan.BurstRays = 200
	s.Scan.AzimuthSteps = 48
	s.Scan.ElevationSteps = 24
	s.Scan.ViewSamplesX = 64
	s.Scan.ViewSamplesY = 36
	s.Scan.SweepLines = 60
	s.Scan.SweepColumns = 90
	s.Scan.SweepDuration = 2
	s.Scan.SweepPitchSpan = 150

	s.Buffer.Capacity = 131072
	s.Buffer.CellSize = 0.05
	s.Buffer.MaxPerCell = 6
	s.Buffer.Lifetime = 60
	s.Buffer.MinIntensity = 0.05
	s.Buffer.MaxIntensity = 1
	s.Buffer.FadeEpsilon = 1.0 / 255.0
	s.Buffer.BaseColorR = 0.35
	s.Buffer.BaseColorG = 0.78
	s.Buffer.BaseColorB = 1.0

	s.Index.BudgetMs = 6

	s.Camera.FOV = 90
	s.Camera.Aspect = 16.0 / 9.0

	return s
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %v", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %v", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %v", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %v", err)
	}
	return settings, nil
}
