// Package config holds the configuration of a relay node host.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/robotalks/can914/pkg/can914"
	"github.com/robotalks/can914/pkg/framework"
	"github.com/robotalks/can914/pkg/trace"
)

// Environment variables overriding configuration.
const (
	EnvRole    = "CAN914_ROLE"
	EnvMQTTURL = "CAN914_MQTT_URL"
	EnvSerial  = "CAN914_SERIAL"
)

// ErrUnknownFormat is returned for config files of unsupported type.
var ErrUnknownFormat = errors.New("unknown config file format")

// Node defines the configurations of a node host.
type Node struct {
	Role string `toml:"role" yaml:"role"`

	// SerialPort receives diagnostics when set, e.g. /dev/ttyUSB0.
	SerialPort string `toml:"serial_port" yaml:"serial_port"`
	SerialBaud int    `toml:"serial_baud" yaml:"serial_baud"`

	TraceFile       string `toml:"trace_file" yaml:"trace_file"`
	TraceMaxSizeMB  int    `toml:"trace_max_size_mb" yaml:"trace_max_size_mb"`
	TraceMaxBackups int    `toml:"trace_max_backups" yaml:"trace_max_backups"`

	CaptureFile string `toml:"capture_file" yaml:"capture_file"`
	CandumpFile string `toml:"candump_file" yaml:"candump_file"`

	// MQTTURL specifies the MQTT broker to mirror to.
	// e.g. mqtt://host:port/topic-prefix
	MQTTURL string `toml:"mqtt_url" yaml:"mqtt_url"`

	// SimFailures is the number of Begin failures of the simulated
	// controller, -1 fails forever.
	SimFailures int `toml:"sim_failures" yaml:"sim_failures"`

	Interval time.Duration `toml:"interval" yaml:"interval"`
}

var defaultConfig = Node{
	Role:            can914.RoleFrunk.String(),
	SerialBaud:      trace.DefaultBaud,
	TraceMaxSizeMB:  10,
	TraceMaxBackups: 3,
	Interval:        framework.DefaultInterval,
}

func init() {
	defaultConfig.ApplyEnv(os.LookupEnv)
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Role, "role", defaultConfig.Role, "Module role: frunk, trunk, main, controls, obd2bridge.")
	flag.StringVar(&defaultConfig.SerialPort, "serial", defaultConfig.SerialPort, "Serial port for diagnostics.")
	flag.IntVar(&defaultConfig.SerialBaud, "serial-baud", defaultConfig.SerialBaud, "Diagnostics baud rate.")
	flag.StringVar(&defaultConfig.TraceFile, "trace-file", defaultConfig.TraceFile, "Rotating file for diagnostics.")
	flag.StringVar(&defaultConfig.CaptureFile, "capture", defaultConfig.CaptureFile, "CBOR capture of link events.")
	flag.StringVar(&defaultConfig.CandumpFile, "candump", defaultConfig.CandumpFile, "candump log of transmitted frames.")
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL for mirroring.")
	flag.IntVar(&defaultConfig.SimFailures, "sim-failures", defaultConfig.SimFailures, "Begin failures of the simulated controller, -1 for never ready.")
	flag.DurationVar(&defaultConfig.Interval, "interval", defaultConfig.Interval, "Control loop interval.")
}

// Default gets default config.
func Default() *Node {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Node {
	conf := defaultConfig
	return &conf
}

// Load creates a config from the defaults and applies the file over it.
// The environment is already folded into the defaults, so flags win
// over environment variables.
func Load(path string) (*Node, error) {
	conf := NewConfig()
	if path != "" {
		if err := conf.LoadFile(path); err != nil {
			return nil, err
		}
	}
	return conf, conf.Validate()
}

// LoadFile decodes a TOML or YAML file over the current values.
func (c *Node) LoadFile(path string) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var md toml.MetaData
		if md, err = toml.DecodeFile(path, c); err == nil {
			if keys := md.Undecoded(); len(keys) > 0 {
				err = fmt.Errorf("unknown keys %v", keys)
			}
		}
	case ".yaml", ".yml":
		var data []byte
		if data, err = ioutil.ReadFile(path); err == nil {
			err = yaml.UnmarshalStrict(data, c)
		}
	default:
		return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides values from environment variables.
func (c *Node) ApplyEnv(lookup func(string) (string, bool)) {
	if val, ok := lookup(EnvRole); ok && val != "" {
		c.Role = val
	}
	if val, ok := lookup(EnvMQTTURL); ok {
		c.MQTTURL = val
	}
	if val, ok := lookup(EnvSerial); ok {
		c.SerialPort = val
	}
}

// ModuleRole returns the parsed role.
func (c *Node) ModuleRole() (can914.ModuleRole, error) {
	return can914.ParseModuleRole(c.Role)
}

// Validate checks the configuration.
func (c *Node) Validate() error {
	if _, err := c.ModuleRole(); err != nil {
		return err
	}
	if c.SerialPort != "" && c.SerialBaud <= 0 {
		return fmt.Errorf("invalid serial baud rate: %d", c.SerialBaud)
	}
	if c.SimFailures < -1 {
		return fmt.Errorf("invalid sim failures: %d", c.SimFailures)
	}
	if c.Interval < 0 {
		return fmt.Errorf("invalid interval: %v", c.Interval)
	}
	if c.TraceFile != "" && (c.TraceMaxSizeMB <= 0 || c.TraceMaxBackups < 0) {
		return fmt.Errorf("invalid trace rotation: size=%dMB backups=%d", c.TraceMaxSizeMB, c.TraceMaxBackups)
	}
	return nil
}
