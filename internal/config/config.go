package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed recognition.yaml
var recognitionYAML []byte

type Config struct {
	Database DatabaseConfig
	Camera   CameraConfig
	Blob     BlobConfig
	Web      WebConfig
	Tuning   TuningConfig
	LogLevel string
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type CameraConfig struct {
	Device      string // device index ("0") or a video file / stream URL
	CascadePath string // Haar cascade XML used for face detection
}

// BlobConfig selects where representative student photos are stored.
// S3 wins when a bucket is configured, otherwise a local directory is used.
// With neither set, photo uploads are skipped.
type BlobConfig struct {
	S3Bucket   string
	S3Region   string
	S3Endpoint string // optional, for MinIO and other S3-compatible stores
	Dir        string
}

type WebConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string // extra CORS origins; localhost is always allowed
}

// TuningConfig holds the recognition and capture constants loaded from the
// embedded recognition.yaml.
type TuningConfig struct {
	Recognition RecognitionTuning `yaml:"recognition"`
	Detection   DetectionTuning   `yaml:"detection"`
	Verify      VerifyTuning      `yaml:"verify"`
	Register    RegisterTuning    `yaml:"register"`
}

type RecognitionTuning struct {
	Threshold float64 `yaml:"threshold"`
	FaceSize  int     `yaml:"face_size"`
}

type DetectionTuning struct {
	ScaleFactor  float64 `yaml:"scale_factor"`
	MinNeighbors int     `yaml:"min_neighbors"`
	MinFaceSize  int     `yaml:"min_face_size"`
}

type VerifyTuning struct {
	InteractiveMaxFrames int `yaml:"interactive_max_frames"`
	TimeoutSeconds       int `yaml:"timeout_seconds"`
	FramesPerSecond      int `yaml:"frames_per_second"`
}

type RegisterTuning struct {
	InteractiveSamples int `yaml:"interactive_samples"`
	ServiceSamples     int `yaml:"service_samples"`
	MinSamples         int `yaml:"min_samples"`
	EqualizeEvery      int `yaml:"equalize_every"`
	SampleIntervalMs   int `yaml:"sample_interval_ms"`
	MaxFrames          int `yaml:"max_frames"`
}

// DefaultFramesPerSecond is the nominal verification rate used when
// frames_per_second is unset or non-positive.
const DefaultFramesPerSecond = 10

func (v VerifyTuning) rate() int {
	if v.FramesPerSecond <= 0 {
		return DefaultFramesPerSecond
	}
	return v.FramesPerSecond
}

// FrameInterval returns the nominal pause between two verification frames.
func (v VerifyTuning) FrameInterval() time.Duration {
	return time.Second / time.Duration(v.rate())
}

// ServiceMaxFrames converts a timeout in seconds into a frame budget at the
// nominal frame rate. Non-positive timeouts fall back to the default.
func (v VerifyTuning) ServiceMaxFrames(timeoutSeconds int) int {
	if timeoutSeconds <= 0 {
		timeoutSeconds = v.TimeoutSeconds
	}
	return timeoutSeconds * v.rate()
}

// SampleInterval returns the pause between two registration samples.
func (r RegisterTuning) SampleInterval() time.Duration {
	return time.Duration(r.SampleIntervalMs) * time.Millisecond
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat is envInt for positive floats.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envList splits a comma-separated environment variable, dropping blanks.
func envList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// DefaultTuning returns the tunables from the embedded recognition.yaml
// without environment overrides.
func DefaultTuning() TuningConfig {
	var tuning TuningConfig
	if err := yaml.Unmarshal(recognitionYAML, &tuning); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded recognition.yaml: " + err.Error())
	}
	return tuning
}

func Load() *Config {
	tuning := DefaultTuning()
	tuning.Recognition.Threshold = envFloat("RECOGNITION_THRESHOLD", tuning.Recognition.Threshold)
	tuning.Verify.TimeoutSeconds = envInt("VERIFY_TIMEOUT_SECONDS", tuning.Verify.TimeoutSeconds)

	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Camera: CameraConfig{
			Device:      envString("CAMERA_DEVICE", "0"),
			CascadePath: envString("CASCADE_PATH", "haarcascade_frontalface_default.xml"),
		},
		Blob: BlobConfig{
			S3Bucket:   os.Getenv("BLOB_S3_BUCKET"),
			S3Region:   envString("BLOB_S3_REGION", "us-east-1"),
			S3Endpoint: os.Getenv("BLOB_S3_ENDPOINT"),
			Dir:        os.Getenv("BLOB_DIR"),
		},
		Web: WebConfig{
			Host:           envString("WEB_HOST", "0.0.0.0"),
			Port:           envInt("WEB_PORT", 5001),
			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
		},
		Tuning:   tuning,
		LogLevel: envString("LOG_LEVEL", "info"),
	}
}
