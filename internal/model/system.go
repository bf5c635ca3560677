package model

import "time"

// NotAvailable is rendered for values the host cannot provide.
const NotAvailable = "Not available"

// Unknown is rendered for values that could not be determined.
const Unknown = "Unknown"

// UsageMetrics are simulated load percentages. They are random values within
// fixed bands and do not measure the host.
type UsageMetrics struct {
	CPU       int  `json:"cpu"`
	Memory    int  `json:"memory"`
	Disk      int  `json:"disk"`
	Simulated bool `json:"simulated"`
}

// HardwareSpecs are probed from the Go runtime and the operating system.
// String fields hold NotAvailable or Unknown when a probe is unsupported.
type HardwareSpecs struct {
	CPUCores      string `json:"cpuCores"`
	Architecture  string `json:"architecture"`
	OS            string `json:"os"`
	TotalMemory   string `json:"totalMemory"`
	FreeMemory    string `json:"freeMemory"`
	HeapSize      string `json:"heapSize"`
	StorageTotal  string `json:"storageTotal"`
	StorageUsed   string `json:"storageUsed"`
	StorageFree   string `json:"storageFree"`
	GoVersion     string `json:"goVersion"`
	NumGoroutines int    `json:"numGoroutines"`
}

// SystemMetrics is one refresh of the metrics widget.
type SystemMetrics struct {
	Usage     UsageMetrics  `json:"usage"`
	Specs     HardwareSpecs `json:"specs"`
	SampledAt time.Time     `json:"sampledAt"`
}

// SpeedTestStage is one step of the simulated speed test.
type SpeedTestStage struct {
	Label    string `json:"label"`
	Progress int    `json:"progress"`
}

// SpeedTestResult holds simulated download/upload/ping figures.
type SpeedTestResult struct {
	DownloadMbps   float64   `json:"downloadMbps"`
	UploadMbps     float64   `json:"uploadMbps"`
	PingMs         int       `json:"pingMs"`
	ConnectionType string    `json:"connectionType"`
	Simulated      bool      `json:"simulated"`
	TestedAt       time.Time `json:"testedAt"`
}

// BatteryStatus is read from the host power supply.
type BatteryStatus struct {
	Supported     bool   `json:"supported"`
	Level         int    `json:"level"`
	Charging      bool   `json:"charging"`
	TimeRemaining string `json:"timeRemaining"`
	Health        string `json:"health"`
	StatusText    string `json:"statusText"`
}
