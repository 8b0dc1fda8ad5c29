package main

import (
	"flag"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/kbd.go/pkg/cli/sh"
	"github.com/robotalks/kbd.go/pkg/env"
	"github.com/robotalks/kbd.go/pkg/framework"
)

const sendTimeout = time.Second

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	d := framework.NewDispatcher()
	lnk, err := env.NewConfig().OpenLed(d)
	if err != nil {
		glog.Exit(err)
	}

	runner := framework.NewRunner().HandleSignals()
	runner.Go(
		framework.NamedRun("dispatcher", d),
		framework.NamedRun("link", lnk.Channel),
	)

	shell := sh.New(lnk.Led)
	shellErr := shell.Run(flag.Args()...)
	if !shell.WaitSent(sendTimeout) {
		glog.Warning("last frame not sent before exit")
	}
	runner.Stop()
	if err := runner.Wait(); err != nil {
		glog.Error(err)
	}
	if shellErr != nil {
		glog.Exit(shellErr)
	}
}
