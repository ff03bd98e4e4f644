package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"portfolio-scene/internal/catalog"
	"portfolio-scene/internal/commands"
	"portfolio-scene/internal/config"
	"portfolio-scene/internal/debug"
	"portfolio-scene/internal/fonts"
	"portfolio-scene/internal/graphics"
	"portfolio-scene/internal/logger"
	"portfolio-scene/internal/modal"
	"portfolio-scene/internal/scene"
	"portfolio-scene/internal/terminal"
	"portfolio-scene/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	cat, err := catalog.Load(cfg.Assets.CatalogPath)
	if err != nil {
		return err
	}

	var (
		scn     *scene.Scene
		dialog  = &modal.State{}
		engine  = ui.New()
		uiModal = ui.NewModal(engine, dialog, nil)
		reg     = commands.NewRegistry()
		term    = terminal.New(log, reg)
		overlay *debug.Debug
	)

	setup := func() error {
		scn, err = scene.New(cfg, cat, log.Named("scene"))
		if err != nil {
			return err
		}
		scn.OnSelect = func(e catalog.Exhibit) {
			v, err := modal.FromExhibit(e)
			if err != nil {
				log.Warn("exhibit not shown", zap.String("name", e.Name), zap.Error(err))
				return
			}
			dialog.Open(v)
		}

		overlay = debug.New(scn.State)
		overlay.SetShowFPS(cfg.Debug.ShowFPS)
		overlay.SetShowMemAlloc(cfg.Debug.ShowMemAlloc)
		overlay.SetShowState(cfg.Debug.ShowState)

		engine.SetStylesheet(ui.DefaultStylesheet())
		if cfg.Assets.StylePath != "" {
			if err := engine.LoadCSS(cfg.Assets.StylePath); err != nil {
				log.Warn("style file not loaded, using built-in styles", zap.Error(err))
			}
		}
		loadFont(cfg, cat, engine, log)
		ui.ApplyGuiStyle(engine)
		term.SetFont(engine.Font())
		overlay.SetFont(engine.Font())

		commands.RegisterScene(reg, commands.Deps{
			Overlay: overlay,
			Scene:   scn,
			Catalog: cat,
			Save: func() error {
				cfg.Debug = config.DebugConfig{
					ShowFPS:      overlay.ShowFPS,
					ShowMemAlloc: overlay.ShowMemAlloc,
					ShowState:    overlay.ShowState,
				}
				return config.Save(config.DefaultPath, cfg)
			},
			Print: log.Log,
		})
		log.Info("scene ready", zap.Int("exhibits", len(cat.Exhibits())))
		return nil
	}

	update := func(dt time.Duration) {
		term.Update()
		uiModal.Update()
		scn.SetInput(!term.IsOpen() && !dialog.IsOpen(), !dialog.IsOpen())
		scn.Update(dt)
	}
	draw := func() {
		scn.Draw()
		uiModal.Draw()
		term.Draw()
		overlay.Draw()
	}

	teardown := func() {
		if scn != nil {
			scn.Unload()
		}
		engine.Unload()
	}
	return graphics.Run(cfg.Window, graphics.Loop{Init: setup, Update: update, Draw: draw, Close: teardown})
}

// loadFont builds the UI font atlas from the configured face, covering every
// character the catalog displays. Failures fall back to raylib's default font.
func loadFont(cfg config.Config, cat *catalog.Catalog, engine *ui.Engine, log *logger.Logger) {
	src, err := fonts.Resolve(cfg.Assets.FontPath)
	if err != nil {
		log.Warn("font not found, using the embedded face", zap.Error(err))
		src = fonts.Embedded()
	}
	var texts []string
	for _, e := range cat.Exhibits() {
		texts = append(texts, e.DisplayTitle(), e.Description, e.Link)
	}
	if err := engine.LoadFont(src, fonts.Codepoints(texts...)); err != nil {
		log.Warn("font not loaded, using the default face", zap.Error(err))
	}
}
