package config

import (
	"errors"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/can914/pkg/can914"
)

func writeFile(t *testing.T, name, content string) string {
	dir, err := ioutil.TempDir("", "can914-config")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "node.toml", `
role = "trunk"
serial_port = "/dev/ttyUSB0"
mqtt_url = "mqtt://localhost:1883/car/"
sim_failures = 3
interval = "20ms"
`)
	conf := NewConfig()
	require.NoError(t, conf.LoadFile(path))
	require.Equal(t, "trunk", conf.Role)
	require.Equal(t, "/dev/ttyUSB0", conf.SerialPort)
	require.Equal(t, 115200, conf.SerialBaud)
	require.Equal(t, "mqtt://localhost:1883/car/", conf.MQTTURL)
	require.Equal(t, 3, conf.SimFailures)
	require.Equal(t, 20*time.Millisecond, conf.Interval)

	role, err := conf.ModuleRole()
	require.NoError(t, err)
	require.Equal(t, can914.RoleTrunk, role)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "node.yaml", `
role: main
capture_file: /tmp/main.cbor
candump_file: /tmp/main.log
trace_file: /tmp/main.trace
trace_max_size_mb: 1
trace_max_backups: 0
sim_failures: -1
`)
	conf := NewConfig()
	require.NoError(t, conf.LoadFile(path))
	require.Equal(t, "main", conf.Role)
	require.Equal(t, "/tmp/main.cbor", conf.CaptureFile)
	require.Equal(t, "/tmp/main.log", conf.CandumpFile)
	require.Equal(t, "/tmp/main.trace", conf.TraceFile)
	require.Equal(t, 1, conf.TraceMaxSizeMB)
	require.Equal(t, 0, conf.TraceMaxBackups)
	require.Equal(t, -1, conf.SimFailures)
	require.NoError(t, conf.Validate())
}

func TestLoadYAMLUnknownField(t *testing.T) {
	path := writeFile(t, "node.yml", "role: main\nbogus: 1\n")
	require.Error(t, NewConfig().LoadFile(path))
}

func TestLoadTOMLUnknownKey(t *testing.T) {
	path := writeFile(t, "node.toml", "role = \"main\"\nmqtt_ulr = \"mqtt://broker/\"\n")
	err := NewConfig().LoadFile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mqtt_ulr")
}

func TestLoadUnknownFormat(t *testing.T) {
	path := writeFile(t, "node.json", "{}")
	err := NewConfig().LoadFile(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvRole:    "controls",
		EnvMQTTURL: "mqtt://broker/",
		EnvSerial:  "/dev/ttyACM0",
	}
	conf := NewConfig()
	conf.ApplyEnv(func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	})
	require.Equal(t, "controls", conf.Role)
	require.Equal(t, "mqtt://broker/", conf.MQTTURL)
	require.Equal(t, "/dev/ttyACM0", conf.SerialPort)
}

func TestFlagsOverrideEnv(t *testing.T) {
	saved := defaultConfig
	defer func() { defaultConfig = saved }()

	t.Setenv(EnvRole, "trunk")
	t.Setenv(EnvSerial, "/dev/ttyACM0")
	defaultConfig.ApplyEnv(os.LookupEnv)
	SetupFlags()
	require.NoError(t, flag.CommandLine.Parse([]string{"-role", "main"}))

	conf, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "main", conf.Role)
	require.Equal(t, "/dev/ttyACM0", conf.SerialPort)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Node)
		ok     bool
	}{
		{"defaults", func(*Node) {}, true},
		{"bad role", func(c *Node) { c.Role = "hood" }, false},
		{"bad baud", func(c *Node) { c.SerialPort, c.SerialBaud = "/dev/ttyUSB0", 0 }, false},
		{"bad failures", func(c *Node) { c.SimFailures = -2 }, false},
		{"fail forever", func(c *Node) { c.SimFailures = -1 }, true},
		{"bad interval", func(c *Node) { c.Interval = -time.Second }, false},
		{"bad rotation", func(c *Node) { c.TraceFile, c.TraceMaxSizeMB = "x", 0 }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			conf := Node{Role: "frunk", SerialBaud: 115200, TraceMaxSizeMB: 10, Interval: time.Millisecond}
			c.modify(&conf)
			if c.ok {
				require.NoError(t, conf.Validate())
			} else {
				require.Error(t, conf.Validate())
			}
		})
	}
}
