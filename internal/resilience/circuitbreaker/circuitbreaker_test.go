package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      1,
		Interval:         10 * time.Second,
		Timeout:          time.Hour,
		FailureThreshold: 1.0,
		MinRequests:      3,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	if cb.Name() != "test-circuit" {
		t.Errorf("expected name='test-circuit', got %q", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected initial state=Closed, got %v", cb.State())
	}
}

func TestCircuitBreaker_Execute_Success(t *testing.T) {
	cb := New(testConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected result='success', got %v", result)
	}
}

func TestCircuitBreaker_TripsAfterFailures(t *testing.T) {
	cb := New(testConfig())
	testErr := errors.New("down")

	for i := 0; i < 3; i++ {
		if err := cb.Run(func() error { return testErr }); err != testErr {
			t.Fatalf("attempt %d: expected testErr, got %v", i, err)
		}
	}

	if !cb.IsOpen() {
		t.Fatalf("expected open circuit, got %v", cb.State())
	}

	called := false
	err := cb.Run(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
	if called {
		t.Error("fn must not run while open")
	}
}

func TestCircuitBreaker_IsSuccessful(t *testing.T) {
	notFound := errors.New("not found")
	cfg := testConfig()
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, notFound) }
	cb := New(cfg)

	for i := 0; i < 5; i++ {
		_ = cb.Run(func() error { return notFound })
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("ignored errors must not trip the circuit, got %v", cb.State())
	}
}

func TestPresetConfigs(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig("x"), PlatformAPIConfig(), RedisConfig(), DBConfig()} {
		if cfg.Name == "" || cfg.MinRequests == 0 || cfg.Timeout <= 0 {
			t.Errorf("incomplete preset: %+v", cfg)
		}
	}
}
