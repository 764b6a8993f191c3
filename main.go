package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/decker502/acclimation/pkg/app"
	"github.com/decker502/acclimation/pkg/config"
	"github.com/decker502/acclimation/pkg/embedded"
)

var cfg app.Config

var rootCmd = &cobra.Command{
	Use:   "acclimation",
	Short: "Metaverse Acclimation Guide",
	Long:  `A short first-person walk through a room, a hallway and an elevator, narrated by a guide.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cfg)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().StringVar(&cfg.Scene, "scene", "title", "Start scene: title, level1 or credits")
	rootCmd.Flags().DurationVar(&cfg.Padding, "padding", app.DefaultPadding, "Pause between disposing a scene and loading the next")
	rootCmd.Flags().IntVar(&cfg.Width, "width", config.GameWindowWidth, "Logical screen width")
	rootCmd.Flags().IntVar(&cfg.Height, "height", config.GameWindowHeight, "Logical screen height")
}

func run(cfg app.Config) error {
	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	game, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("游戏初始化失败: %w", err)
	}
	defer game.Dispose()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if s := game.Settings(); s != nil && s.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return ebiten.RunGame(game)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
