package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/hhh7-yy/qingmusic-plugin/core/plugin"
	"github.com/hhh7-yy/qingmusic-plugin/model"
)

var (
	playID     string
	playSource string
)

var playurlCmd = &cobra.Command{
	Use:   "playurl",
	Short: "按内容ID获取播放地址",
	Run: func(cmd *cobra.Command, args []string) {
		if playID == "" {
			fmt.Println("请提供内容ID")
			os.Exit(1)
		}

		manager := newManager()
		ctx := context.Background()

		var (
			info *model.PlayInfo
			err  error
		)
		if playSource == plugin.SourceBilibili {
			info, err = manager.BilibiliPlayURL(ctx, playID)
		} else {
			info, err = manager.PipedPlayURL(ctx, playID)
		}
		if err != nil {
			log.Fatalf("获取播放地址失败: %v", err)
		}

		fmt.Printf("播放地址: %s\n", info.URL)
		if info.Br > 0 {
			fmt.Printf("码率: %d\n", info.Br)
		}
		if info.Mime != "" {
			fmt.Printf("格式: %s\n", info.Mime)
		}
	},
}

func init() {
	rootCmd.AddCommand(playurlCmd)

	playurlCmd.Flags().StringVarP(&playID, "id", "i", "", "内容ID（Piped视频ID或B站BV号）")
	playurlCmd.Flags().StringVarP(&playSource, "source", "s", "piped", "来源 (piped 或 bilibili)")
}
