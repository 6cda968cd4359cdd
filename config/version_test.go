package config

import (
	"runtime"
	"testing"
)

func TestBuildInfo(t *testing.T) {
	want := "resextract/" + runtime.GOOS + "-" + runtime.GOARCH + "/dev"
	if got := BuildInfo(); got != want {
		t.Errorf("BuildInfo() = %v, want %v", got, want)
	}
	if !IsDevVersion() {
		t.Errorf("IsDevVersion() = false, want true")
	}
}
