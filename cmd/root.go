package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qingmusic",
	Short: "qingmusic 多来源音乐解析工具",
	Long:  `将搜索关键词或平台内容ID解析为可播放的音频地址，支持Piped镜像与哔哩哔哩两个来源`,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
