package config

import (
	"testing"
	"time"
)

func TestDefaultTuning_EmbeddedValues(t *testing.T) {
	tuning := DefaultTuning()

	if tuning.Recognition.Threshold != 80 {
		t.Errorf("expected threshold 80, got %v", tuning.Recognition.Threshold)
	}
	if tuning.Recognition.FaceSize != 100 {
		t.Errorf("expected face size 100, got %d", tuning.Recognition.FaceSize)
	}
	if tuning.Detection.ScaleFactor != 1.3 {
		t.Errorf("expected scale factor 1.3, got %v", tuning.Detection.ScaleFactor)
	}
	if tuning.Detection.MinNeighbors != 5 {
		t.Errorf("expected min neighbors 5, got %d", tuning.Detection.MinNeighbors)
	}
	if tuning.Verify.InteractiveMaxFrames != 50 {
		t.Errorf("expected interactive budget 50, got %d", tuning.Verify.InteractiveMaxFrames)
	}
	if tuning.Register.MinSamples != 5 {
		t.Errorf("expected min samples 5, got %d", tuning.Register.MinSamples)
	}
	if tuning.Register.ServiceSamples != 50 || tuning.Register.InteractiveSamples != 10 {
		t.Errorf("unexpected sample counts: service=%d interactive=%d",
			tuning.Register.ServiceSamples, tuning.Register.InteractiveSamples)
	}
}

func TestVerifyTuning_ServiceMaxFrames(t *testing.T) {
	v := VerifyTuning{TimeoutSeconds: 15, FramesPerSecond: 10}

	tests := []struct {
		name    string
		timeout int
		want    int
	}{
		{"explicit", 3, 30},
		{"default on zero", 0, 150},
		{"default on negative", -1, 150},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.ServiceMaxFrames(tc.timeout); got != tc.want {
				t.Errorf("expected %d frames, got %d", tc.want, got)
			}
		})
	}
}

func TestVerifyTuning_ServiceMaxFramesNonPositiveRate(t *testing.T) {
	for _, fps := range []int{0, -5} {
		v := VerifyTuning{TimeoutSeconds: 15, FramesPerSecond: fps}
		if got := v.ServiceMaxFrames(3); got != 30 {
			t.Errorf("fps=%d: expected 30 frames for 3s, got %d", fps, got)
		}
		if got := v.ServiceMaxFrames(0); got != 150 {
			t.Errorf("fps=%d: expected 150 default frames, got %d", fps, got)
		}
	}
}

func TestVerifyTuning_FrameInterval(t *testing.T) {
	if got := (VerifyTuning{FramesPerSecond: 10}).FrameInterval(); got != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", got)
	}
	if got := (VerifyTuning{FramesPerSecond: 20}).FrameInterval(); got != 50*time.Millisecond {
		t.Errorf("expected 50ms, got %v", got)
	}
	if got := (VerifyTuning{}).FrameInterval(); got != 100*time.Millisecond {
		t.Errorf("expected default 100ms for zero fps, got %v", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("WEB_PORT", "")
	t.Setenv("CAMERA_DEVICE", "")
	t.Setenv("RECOGNITION_THRESHOLD", "")

	cfg := Load()

	if cfg.Database.URL != "" {
		t.Errorf("expected empty database URL, got %q", cfg.Database.URL)
	}
	if cfg.Database.MaxOpenConns != 25 || cfg.Database.MaxIdleConns != 5 {
		t.Errorf("unexpected pool defaults: %d/%d", cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	}
	if cfg.Web.Port != 5001 {
		t.Errorf("expected default port 5001, got %d", cfg.Web.Port)
	}
	if cfg.Camera.Device != "0" {
		t.Errorf("expected default camera device '0', got %q", cfg.Camera.Device)
	}
	if cfg.Tuning.Recognition.Threshold != 80 {
		t.Errorf("expected threshold 80, got %v", cfg.Tuning.Recognition.Threshold)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("WEB_PORT", "8081")
	t.Setenv("RECOGNITION_THRESHOLD", "65.5")
	t.Setenv("VERIFY_TIMEOUT_SECONDS", "30")
	t.Setenv("BLOB_S3_BUCKET", "photos")

	cfg := Load()

	if cfg.Database.URL != "postgres://u:p@localhost/db" {
		t.Errorf("unexpected database URL %q", cfg.Database.URL)
	}
	if cfg.Web.Port != 8081 {
		t.Errorf("expected port 8081, got %d", cfg.Web.Port)
	}
	if cfg.Tuning.Recognition.Threshold != 65.5 {
		t.Errorf("expected threshold 65.5, got %v", cfg.Tuning.Recognition.Threshold)
	}
	if cfg.Tuning.Verify.TimeoutSeconds != 30 {
		t.Errorf("expected timeout 30, got %d", cfg.Tuning.Verify.TimeoutSeconds)
	}
	if cfg.Blob.S3Bucket != "photos" {
		t.Errorf("expected bucket 'photos', got %q", cfg.Blob.S3Bucket)
	}
}

func TestEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("TEST_ENV_INT", "not-a-number")
	if got := envInt("TEST_ENV_INT", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
	t.Setenv("TEST_ENV_INT", "-3")
	if got := envInt("TEST_ENV_INT", 7); got != 7 {
		t.Errorf("expected fallback 7 for negative value, got %d", got)
	}
}

func TestEnvList(t *testing.T) {
	t.Setenv("WEB_ALLOWED_ORIGINS", " https://a.example, ,https://b.example ")
	got := envList("WEB_ALLOWED_ORIGINS")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", got)
	}

	t.Setenv("WEB_ALLOWED_ORIGINS", "")
	if got := envList("WEB_ALLOWED_ORIGINS"); len(got) != 0 {
		t.Errorf("expected no origins, got %v", got)
	}
}
