// Copyright 2022 p1nant0m <wgblike@gmail.com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"

	"github.com/p1nant0m/ircpump/config"
	"github.com/p1nant0m/ircpump/internal/ircconn"
	"github.com/p1nant0m/ircpump/internal/pump"
	"github.com/p1nant0m/ircpump/internal/pump/store"
	"github.com/p1nant0m/ircpump/internal/pump/store/local"
	"github.com/p1nant0m/ircpump/internal/pump/store/mongodb"
	"github.com/p1nant0m/ircpump/pkg/options"
	"github.com/p1nant0m/ircpump/service/rest"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	StoreMongoDB = "mongodb"
	StoreMemory  = "memory"
)

type runFlags struct {
	httpAddr  string
	storeType string
}

var (
	rFlags    runFlags
	mongoOpts = options.NewMongoDBOptions()
)

const (
	shortDescription_Run = "Connect to irc and record every received line"
	longDescription_Run  = `run resolves the database settings from the options section of the config
file, connects to the irc server and the database, and then records lines
until the irc session fails. That failure is the only way run returns once
recording has started.`
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: shortDescription_Run,
	Long:  longDescription_Run,
	RunE:  runCommandRunFunc,
}

func runCommandRunFunc(cmd *cobra.Command, args []string) error {
	if rFlags.storeType != StoreMongoDB && rFlags.storeType != StoreMemory {
		return fmt.Errorf("unknown store %q, expected %v or %v", rFlags.storeType, StoreMongoDB, StoreMemory)
	}

	flags, err := getGlobalFlags(cmd)
	if err != nil {
		return err
	}

	conf, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	dbConf, err := config.ResolveConnection(conf.Options)
	if err != nil {
		return err
	}
	if dbConf.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	session, err := ircconn.Dial(context.Background(), conf.IRC)
	if err != nil {
		return &pump.ConnectionError{Target: "irc server " + conf.Server, Err: err}
	}

	factory, err := openStore(rFlags.storeType, dbConf)
	if err != nil {
		session.Close()
		return &pump.ConnectionError{Target: "database " + dbConf.Host, Err: err}
	}

	metrics := pump.NewMetrics()
	pipeline, err := pump.NewPipeline(session, factory.Lines(),
		pump.WithDatabase(dbConf.Name),
		pump.WithDebug(dbConf.Debug),
		pump.WithMetrics(metrics),
	)
	if err != nil {
		session.Close()
		return err
	}

	if rFlags.httpAddr != "" {
		router := rest.NewRouter(rest.RouterOptions{
			Store:    factory,
			Database: dbConf.Name,
			Metrics:  metrics,
			QueueLen: pipeline.QueueLen,
		})
		go func() {
			if err := rest.RunRestServer(rFlags.httpAddr, router); err != nil {
				logrus.WithFields(logrus.Fields{
					"err":  err,
					"addr": rFlags.httpAddr,
				}).Error("rest server stopped, recording continues")
			}
		}()
	}

	logrus.WithFields(logrus.Fields{
		"nick":     conf.Nickname,
		"database": dbConf.Name,
		"store":    rFlags.storeType,
	}).Info("recording irc traffic")

	err = pipeline.Run()
	logrus.WithField("err", err).Error("irc session terminated")
	return err
}

func openStore(storeType string, dbConf *config.ConnectionConfig) (store.Factory, error) {
	if storeType == StoreMemory {
		return local.NewLocalStorageFactory()
	}
	return mongodb.GetMongoDBFactoryOr(mongoOpts.ApplyConnection(dbConf))
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&rFlags.httpAddr, "http-addr", "", "serve /healthz, /metrics and /v1/lines on this address, disabled when empty")
	runCmd.Flags().StringVar(&rFlags.storeType, "store", StoreMongoDB, "where lines are recorded <mongodb or memory>")
	mongoOpts.AddFlags(runCmd.Flags())
}
