package service

import (
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	GoVersion string
	Version   string
	Revision  string
	// Modified is true when the binary was built from a dirty working tree.
	Modified bool
}

const undefined = "undefined"

// ReadBuildInfo returns the build information embedded on the binary.
// Fields that are not available are "undefined".
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{GoVersion: undefined, Version: undefined, Revision: undefined}

	bf, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bf.GoVersion
	if v := bf.Main.Version; v != "" {
		info.Version = v
	}
	for _, s := range bf.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// MustRegisterMetrics will register all service metrics on the given registry.
func MustRegisterMetrics(registry *prometheus.Registry) {
	registry.MustRegister(buildInfo)
}

// SampleBuildInfo creates a sample of the service_build_info metric.
// Since it is a gauge it needs to be set only once on the service startup.
func SampleBuildInfo() {
	info := ReadBuildInfo()
	buildInfo.With(prometheus.Labels{
		"goversion": info.GoVersion,
		"version":   info.Version,
		"revision":  info.Revision,
	}).Set(1)
}

var buildInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "service_build_info",
		Help: "Build information of the service",
	},
	[]string{"revision", "version", "goversion"},
)
