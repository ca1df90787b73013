//go:build !opencl

package main

import (
	"errors"

	"forksim/internal/ensemble"
)

type openCLMixer struct{}

var _ ensemble.Mixer = (*openCLMixer)(nil)

func newOpenCLMixer() (*openCLMixer, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (m *openCLMixer) Mix([]float64, float64, int) ([]float64, error) {
	return nil, errors.New("OpenCL mixer unavailable")
}

func (m *openCLMixer) Close() {}

func (m *openCLMixer) DeviceName() string { return "" }
