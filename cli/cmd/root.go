// Copyright 2022 p1nant0m <wgblike@gmail.com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/p1nant0m/ircpump/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	shortDescription_Root = "Record every line of an irc session into mongodb"
	longDescription_Root  = `ircpump connects to an irc server, stamps every line it receives with the
receive time and stores it as a {time, line} document in the raw collection.
The process runs until the irc connection fails.`
)

var rootCmd = &cobra.Command{
	Use:           "ircpump",
	Short:         shortDescription_Root,
	Long:          longDescription_Root,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line and returns the error that ended it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.99999999",
	})

	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "conf", "c", config.DefaultConfigPath, "config file path <json, yaml or toml>")
}
