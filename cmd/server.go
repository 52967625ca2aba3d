package cmd

import (
	"github.com/hhh7-yy/qingmusic-plugin/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动解析服务",
	Long:  `启动HTTP服务，对宿主应用提供四个解析接口以及跨域转发中继`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
