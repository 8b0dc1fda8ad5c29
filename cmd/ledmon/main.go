package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robotalks/kbd.go/pkg/env"
	"github.com/robotalks/kbd.go/pkg/framework"
	"github.com/robotalks/kbd.go/pkg/led"
	"github.com/robotalks/kbd.go/pkg/monitor"
)

func init() {
	env.SetupFlags()
}

type metricsServer struct {
	addr string
}

func (s *metricsServer) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: s.addr, Handler: mux}
	glog.Infof("metrics on %s", s.addr)
	return framework.RunWithContextCancel(ctx, func() { srv.Close() }, srv.ListenAndServe)
}

func main() {
	flag.Parse()
	defer glog.Flush()
	conf := env.NewConfig()

	opts, prefix, err := monitor.ClientOptionsFromURL(conf.MQTTURL)
	if err != nil {
		glog.Exitf("invalid mqtt url: %v", err)
	}
	if opts.ClientID == "" {
		if id, err := env.ClientID("ledmon"); err == nil {
			opts.SetClientID(id)
		} else {
			glog.Warningf("machine id: %v", err)
		}
	}
	q := monitor.NewQueue(opts, prefix)

	d := framework.NewDispatcher()
	lnk, err := conf.OpenLed(d)
	if err != nil {
		glog.Exit(err)
	}
	lnk.Led.Claim(func(l *led.Led) {
		l.Mux().Tap(&monitor.Tap{Publisher: q})
	})
	(&monitor.Remote{Led: lnk.Led}).Subscribe(q)
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		glog.Exitf("mqtt connect: %v", token.Error())
	}
	defer q.Close()

	var stats monitor.LinkStats
	lnk.Led.Claim(func(l *led.Led) { stats.Serial = l.Serial() })
	stats.Drops = lnk.Channel
	d.AddRunnable(framework.NamedRun("stats", &stats))

	runner := framework.NewRunner().HandleSignals()
	runner.Go(
		framework.NamedRun("dispatcher", d),
		framework.NamedRun("link", lnk.Channel),
		framework.NamedRun("metrics", &metricsServer{addr: conf.MetricsAddr}),
	)
	if err := runner.Wait(); err != nil {
		glog.Error(err)
	}
}
