package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/robotalks/can914/pkg/bus/sim"
	"github.com/robotalks/can914/pkg/capture"
	"github.com/robotalks/can914/pkg/config"
	fx "github.com/robotalks/can914/pkg/framework"
	"github.com/robotalks/can914/pkg/gpio"
	"github.com/robotalks/can914/pkg/link"
	"github.com/robotalks/can914/pkg/mirror"
	"github.com/robotalks/can914/pkg/node"
	"github.com/robotalks/can914/pkg/trace"
)

//go-build: CGO_ENABLED=0

var configFile string

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func init() {
	config.SetupFlags()
	flag.StringVar(&configFile, "config", configFile, "TOML or YAML config file.")
}

func setup(conf *config.Node, runner *fx.Runner) (*node.Node, error) {
	role, err := conf.ModuleRole()
	if err != nil {
		return nil, err
	}

	sinks := trace.Multi{trace.Glog{Level: 1}}
	if conf.TraceFile != "" {
		f := trace.NewRotatingFile(conf.TraceFile, conf.TraceMaxSizeMB, conf.TraceMaxBackups)
		runner.CloseOnExit(f)
		sinks = append(sinks, f)
	}

	var opts []link.Option
	if conf.CaptureFile != "" {
		f, err := os.Create(conf.CaptureFile)
		if err != nil {
			return nil, err
		}
		runner.CloseOnExit(f)
		opts = append(opts, link.WithObserver(capture.NewRecorder(f)))
	}
	if conf.CandumpFile != "" {
		f, err := os.Create(conf.CandumpFile)
		if err != nil {
			return nil, err
		}
		runner.CloseOnExit(f)
		opts = append(opts, link.WithObserver(capture.NewCandump(f, "")))
	}
	if conf.MQTTURL != "" {
		meta := mirror.MetaOf(role, mirror.NodeID())
		q, err := mirror.NewNodeQueue(conf.MQTTURL, meta)
		if err != nil {
			return nil, fmt.Errorf("mqtt: %w", err)
		}
		token := q.Connect()
		token.Wait()
		if err := token.Error(); err != nil {
			return nil, fmt.Errorf("mqtt connect: %w", err)
		}
		runner.CloseOnExit(q, closerFunc(func() error {
			mirror.Unannounce(q, meta).Wait()
			return nil
		}))
		opts = append(opts, link.WithObserver(mirror.New(q, role, meta.NodeID)))
	}

	n := node.New(role, gpio.NewMemory(), sim.New(conf.SimFailures), opts...)
	n.Tracer = sinks
	if conf.SerialPort != "" {
		n.OpenDiag = func(baud int) (trace.Sink, error) {
			if conf.SerialBaud > 0 {
				baud = conf.SerialBaud
			}
			s, err := trace.OpenSerial(conf.SerialPort, baud)
			if err != nil {
				return nil, err
			}
			runner.CloseOnExit(s)
			return s, nil
		}
	}
	return n, nil
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf, err := config.Load(configFile)
	if err != nil {
		glog.Exit(err)
	}
	runner := fx.NewRunner().HandleSignals()
	n, err := setup(conf, runner)
	if err != nil {
		runner.Wait()
		glog.Exit(err)
	}

	var ready int32
	go func() {
		<-runner.Context.Done()
		if atomic.LoadInt32(&ready) == 0 {
			glog.Warning("stopped while waiting for the bus")
			glog.Flush()
			os.Exit(1)
		}
	}()

	runner.Go(fx.RunFunc(func(ctx context.Context) error {
		if err := n.Bringup(); err != nil {
			return err
		}
		atomic.StoreInt32(&ready, 1)
		glog.Infof("%s node ready", n.Role())
		loop := fx.NewLoop()
		loop.Interval = conf.Interval
		return loop.Add(node.NewPoller(n)).Run(ctx)
	}))
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
