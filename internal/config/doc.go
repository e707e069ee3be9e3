// Package config provides configuration loading and validation for the
// sequence inference service. It handles YAML-based configuration with
// struct validation covering the gRPC server, the monitoring HTTP
// server, sequence state management and the served model list.
package config
