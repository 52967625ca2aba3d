package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/hhh7-yy/qingmusic-plugin/config"
	"github.com/hhh7-yy/qingmusic-plugin/core/plugin"
	"github.com/hhh7-yy/qingmusic-plugin/logger"
	"github.com/hhh7-yy/qingmusic-plugin/model"
)

var (
	searchKeyword string
	searchSource  string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "搜索歌曲并获取播放地址",
	Long:  `搜索歌曲，展示结果列表，并可选择一首获取其播放地址`,
	Run: func(cmd *cobra.Command, args []string) {
		if searchKeyword == "" {
			fmt.Println("请输入要搜索的歌曲名称")
			os.Exit(1)
		}

		manager := newManager()
		ctx := context.Background()

		fmt.Printf("正在搜索: %s\n", searchKeyword)
		var (
			songs []model.Song
			err   error
		)
		if searchSource == plugin.SourceBilibili {
			songs, err = manager.SearchBilibili(ctx, searchKeyword)
		} else {
			songs, err = manager.SearchPiped(ctx, searchKeyword)
		}
		if err != nil {
			log.Fatalf("搜索失败: %v", err)
		}

		if len(songs) == 0 {
			fmt.Println("未找到相关歌曲")
			return
		}

		fmt.Printf("\n找到 %d 首歌曲:\n", len(songs))
		for i, song := range songs {
			line := fmt.Sprintf("%d. %s - %s", i+1, song.Name, song.Artist)
			if song.Duration > 0 {
				line += fmt.Sprintf(" [%d:%02d]", song.Duration/60, song.Duration%60)
			}
			fmt.Println(line)
		}

		var choice int
		fmt.Print("\n请选择要获取播放地址的歌曲编号: ")
		fmt.Scan(&choice)

		if choice < 1 || choice > len(songs) {
			fmt.Println("无效的选择")
			return
		}

		selected := songs[choice-1]
		var info *model.PlayInfo
		if searchSource == plugin.SourceBilibili {
			info, err = manager.BilibiliPlayURL(ctx, selected.ID)
		} else {
			info, err = manager.PipedPlayURL(ctx, selected.ID)
		}
		if err != nil {
			log.Fatalf("获取播放地址失败: %v", err)
		}

		fmt.Printf("\n歌曲: %s\n", selected.Name)
		fmt.Printf("艺术家: %s\n", selected.Artist)
		fmt.Printf("播放地址: %s\n", info.URL)
		if info.Br > 0 {
			fmt.Printf("码率: %d\n", info.Br)
		}
	},
}

// newManager 按配置构造来源管理器
func newManager() *plugin.Manager {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogPath)

	manager := plugin.NewManager()
	manager.Register(plugin.NewPipedSource(cfg.PipedHosts, cfg.HTTPTimeout))
	manager.Register(plugin.NewBilibiliSource(cfg.BilibiliAPIURL, cfg.HTTPTimeout))
	return manager
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchKeyword, "keyword", "k", "", "要搜索的歌曲名称")
	searchCmd.Flags().StringVarP(&searchSource, "source", "s", "piped", "来源 (piped 或 bilibili)")
}
