package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"portfolio-scene/internal/logger"
)

// DefaultPath is the scene config file, relative to the process working directory.
const DefaultPath = "config/scene.yaml"

// Config holds everything the scene reads at startup. Fields tagged env can be
// overridden with PORTFOLIO_* variables (including ones set from .env).
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Assets    AssetConfig     `yaml:"assets"`
	Character CharacterConfig `yaml:"character"`
	Camera    CameraConfig    `yaml:"camera"`
	Ground    GroundConfig    `yaml:"ground"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Debug     DebugConfig     `yaml:"debug"`
	Log       logger.Config   `yaml:"log"`
}

type WindowConfig struct {
	Title      string `yaml:"title" env:"PORTFOLIO_WINDOW_TITLE"`
	Width      int32  `yaml:"width" env:"PORTFOLIO_WINDOW_WIDTH"`
	Height     int32  `yaml:"height" env:"PORTFOLIO_WINDOW_HEIGHT"`
	Fullscreen bool   `yaml:"fullscreen" env:"PORTFOLIO_FULLSCREEN"`
	TargetFPS  int32  `yaml:"target_fps" env:"PORTFOLIO_TARGET_FPS"`
}

type AssetConfig struct {
	ModelPath   string `yaml:"model" env:"PORTFOLIO_MODEL_PATH"`
	CatalogPath string `yaml:"catalog" env:"PORTFOLIO_CATALOG_PATH"` // empty = embedded catalog
	FontPath    string `yaml:"font" env:"PORTFOLIO_FONT_PATH"`       // empty = embedded Go font
	StylePath   string `yaml:"style" env:"PORTFOLIO_STYLE_PATH"`     // empty = embedded modal stylesheet
}

// CharacterConfig mirrors the character entity's fixed parameters.
type CharacterConfig struct {
	Node         string        `yaml:"node"`
	MoveDistance float32       `yaml:"move_distance" env:"PORTFOLIO_MOVE_DISTANCE"`
	JumpHeight   float32       `yaml:"jump_height" env:"PORTFOLIO_JUMP_HEIGHT"`
	MoveDuration time.Duration `yaml:"move_duration" env:"PORTFOLIO_MOVE_DURATION"`
}

type CameraConfig struct {
	Position        [3]float32    `yaml:"position"`
	Target          [3]float32    `yaml:"target"`
	Fovy            float32       `yaml:"fovy"`
	ZoomReference   float32       `yaml:"zoom_reference"`
	FollowSmoothing float32       `yaml:"follow_smoothing" env:"PORTFOLIO_FOLLOW_SMOOTHING"`
	SettleDelay     time.Duration `yaml:"settle_delay" env:"PORTFOLIO_SETTLE_DELAY"`
	Damping         float32       `yaml:"damping"`
	RotateSpeed     float32       `yaml:"rotate_speed"`
	ZoomSpeed       float32       `yaml:"zoom_speed"`
}

type GroundConfig struct {
	Size        float32 `yaml:"size"`
	Color       string  `yaml:"color"`
	Grain       float64 `yaml:"grain"`
	TextureSize int     `yaml:"texture_size"`
	Tiling      float32 `yaml:"tiling"`
}

type LightingConfig struct {
	SunPosition      [3]float32 `yaml:"sun_position"`
	SunColor         string     `yaml:"sun_color"`
	AmbientColor     string     `yaml:"ambient_color"`
	AmbientIntensity float32    `yaml:"ambient_intensity"`
}

// DebugConfig holds overlay toggles; persisted across runs by cmd save.
type DebugConfig struct {
	ShowFPS      bool `yaml:"show_fps" env:"PORTFOLIO_SHOW_FPS"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowState    bool `yaml:"show_state"`
}

// Default returns the values the portfolio scene was authored with.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "Portfolio",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
		},
		Assets: AssetConfig{
			ModelPath: "assets/model.glb",
		},
		Character: CharacterConfig{
			Node:         "face001",
			MoveDistance: 3,
			JumpHeight:   1,
			MoveDuration: 200 * time.Millisecond,
		},
		Camera: CameraConfig{
			Position:        [3]float32{160, 80, -128},
			Target:          [3]float32{128, 40, -112},
			Fovy:            75,
			ZoomReference:   1200,
			FollowSmoothing: 0.1,
			SettleDelay:     300 * time.Millisecond,
			Damping:         0.05,
			RotateSpeed:     0.005,
			ZoomSpeed:       0.95,
		},
		Ground: GroundConfig{
			Size:        5000,
			Color:       "#5e9e4d",
			Grain:       0.08,
			TextureSize: 256,
			Tiling:      200,
		},
		Lighting: LightingConfig{
			SunPosition:      [3]float32{80, 80, 50},
			SunColor:         "#5c4f2c",
			AmbientColor:     "#404040",
			AmbientIntensity: 4,
		},
		Log: logger.DefaultConfig(),
	}
}

// Load reads path over Default(), then applies environment overrides and validates.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting the scene cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Character.MoveDistance <= 0:
		return fmt.Errorf("config: character.move_distance must be positive, got %v", c.Character.MoveDistance)
	case c.Character.MoveDuration <= 0:
		return fmt.Errorf("config: character.move_duration must be positive, got %v", c.Character.MoveDuration)
	case c.Character.JumpHeight < 0:
		return fmt.Errorf("config: character.jump_height must not be negative, got %v", c.Character.JumpHeight)
	case c.Camera.FollowSmoothing <= 0 || c.Camera.FollowSmoothing > 1:
		return fmt.Errorf("config: camera.follow_smoothing must be in (0,1], got %v", c.Camera.FollowSmoothing)
	case c.Camera.SettleDelay < 0:
		return fmt.Errorf("config: camera.settle_delay must not be negative, got %v", c.Camera.SettleDelay)
	case c.Character.Node == "":
		return errors.New("config: character.node is required")
	}
	return nil
}
