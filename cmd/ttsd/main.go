package main

import (
	"context"
	"errors"
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/tts.go/pkg/bridge/mqtt"
	"github.com/robotalks/tts.go/pkg/config"
	"github.com/robotalks/tts.go/pkg/framework"
	"github.com/robotalks/tts.go/pkg/speech"
)

var flags *config.Flags

func init() {
	flags = config.SetupFlags(nil)
}

func main() {
	flag.Parse()

	conf, err := flags.Load()
	if err != nil {
		glog.Exitf("config: %v", err)
	}
	dev, closer, err := conf.Open()
	if err != nil {
		glog.Exitf("open device: %v", err)
	}
	worker := speech.NewWorker(dev)
	bridge, err := mqtt.NewBridge(conf.MQTT.URL, conf.ID, mqtt.Meta{
		Description: conf.Description,
		Labels:      conf.Labels,
	}, worker)
	if err != nil {
		closer.Close()
		glog.Exit(err)
	}

	glog.Infof("serving %s on %s", conf.ID, conf.MQTT.URL)
	runner := framework.NewRunner().HandleSignals()
	err = framework.RunWithContextCloser(runner.Context, closer, func() error {
		return runner.Run(framework.NamedRun("worker", worker), bridge)
	})
	glog.Flush()
	if err != nil && !errors.Is(err, context.Canceled) {
		glog.Exit(err)
	}
}
