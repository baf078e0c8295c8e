package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/primehomes/primehomes/config"
	"github.com/primehomes/primehomes/internal/adminapi"
	"github.com/primehomes/primehomes/internal/app"
	"github.com/primehomes/primehomes/internal/publicapi"
	"github.com/primehomes/primehomes/internal/webserver"
	"github.com/primehomes/primehomes/pkg/common"
	"go.uber.org/zap"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "initialize database and exit")
	migrate  = flag.Bool("migrate", false, "run database migration and exit")
)

var (
	BuildVersion string
	ReleaseDate  string
)

func printVersion() {
	fmt.Printf("primehomes version %s (%s)\n", BuildVersion, ReleaseDate)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		return
	}
	if *showVer {
		printVersion()
		return
	}

	if *conffile != "" && !common.FileExists(*conffile) {
		fmt.Fprintf(os.Stderr, "config file %s not found, using defaults\n", *conffile)
		*conffile = ""
	}
	appConfig := config.LoadConfig(*conffile)
	application := app.NewApplication(appConfig)
	application.Init(appConfig)
	defer application.Release()

	if *initdb {
		application.InitDb()
		return
	}
	if *migrate {
		if err := application.MigrateDB(true); err != nil {
			zap.L().Fatal("migrate failed", zap.Error(err))
		}
		return
	}

	if err := application.Catalog().Reload(context.Background()); err != nil {
		// Server still starts, the status endpoint reports the failure
		zap.L().Error("initial catalog load failed", zap.Error(err))
	}

	webserver.Init(application)
	adminapi.RegisterRoutes()
	publicapi.RegisterRoutes()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		zap.L().Info("shutting down")
		application.Release()
		os.Exit(0)
	}()

	if err := webserver.Listen(); err != nil {
		zap.L().Fatal("web server failed", zap.Error(err))
	}
}
