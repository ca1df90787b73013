//go:build opencl

package main

import (
	"fmt"

	"github.com/jgillich/go-opencl/cl"

	"forksim/internal/ensemble"
	"forksim/internal/tone"
)

// openCLMixer evaluates the averaged fork tone on an OpenCL device. Each
// work item computes one output sample across every fork.
type openCLMixer struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	deviceName string
}

var _ ensemble.Mixer = (*openCLMixer)(nil)

const mixKernelSource = `__kernel void mix_forks(
    const int samples,
    const int forks,
    const float step,
    const float amplitude,
    __global const float* freqs,
    __global float* out)
{
    int i = get_global_id(0);
    if (i >= samples) {
        return;
    }
    float t = (float)i * step;
    float acc = 0.0f;
    for (int k = 0; k < forks; k++) {
        float cycles = freqs[k] * t;
        cycles -= floor(cycles);
        acc += amplitude * sin(6.283185307179586f * cycles);
    }
    out[i] = acc / (float)forks;
}`

// devicesOf lists every device of kind across platforms, skipping
// platforms that fail to enumerate.
func devicesOf(platforms []*cl.Platform, kind cl.DeviceType) []*cl.Device {
	var out []*cl.Device
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil {
			continue
		}
		out = append(out, devices...)
	}
	return out
}

// pickOpenCLDevice prefers a GPU and falls back to a CPU device.
func pickOpenCLDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, openCLError("listing platforms", err)
	}
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		if devices := devicesOf(platforms, kind); len(devices) > 0 {
			return devices[0], nil
		}
	}
	return nil, fmt.Errorf("no GPU or CPU device on %d OpenCL platforms", len(platforms))
}

func newOpenCLMixer() (*openCLMixer, error) {
	device, err := pickOpenCLDevice()
	if err != nil {
		return nil, err
	}
	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, openCLError("creating OpenCL context", err)
	}
	m := &openCLMixer{context: context, deviceName: device.Name()}
	m.queue, err = context.CreateCommandQueue(device, 0)
	if err != nil {
		m.Close()
		return nil, openCLError("creating OpenCL command queue", err)
	}
	m.program, err = context.CreateProgramWithSource([]string{mixKernelSource})
	if err != nil {
		m.Close()
		return nil, openCLError("creating OpenCL program", err)
	}
	if err := m.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		m.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, openCLError("building OpenCL program", err)
	}
	m.kernel, err = m.program.CreateKernel("mix_forks")
	if err != nil {
		m.Close()
		return nil, openCLError("creating OpenCL kernel", err)
	}
	return m, nil
}

// Mix implements ensemble.Mixer.
func (m *openCLMixer) Mix(freqs []float64, duration float64, sampleRate int) ([]float64, error) {
	if len(freqs) == 0 {
		return nil, ensemble.ErrEmptyEnsemble
	}
	n := tone.SampleCount(duration, sampleRate)
	if n == 0 {
		return []float64{}, nil
	}
	host := make([]float32, len(freqs))
	for i, f := range freqs {
		host[i] = float32(f)
	}

	freqBuf, err := m.context.CreateEmptyBuffer(cl.MemReadOnly, 4*len(host))
	if err != nil {
		return nil, openCLError("allocating frequency buffer", err)
	}
	defer freqBuf.Release()
	outBuf, err := m.context.CreateEmptyBuffer(cl.MemWriteOnly, 4*n)
	if err != nil {
		return nil, openCLError("allocating output buffer", err)
	}
	defer outBuf.Release()

	if _, err := m.queue.EnqueueWriteBufferFloat32(freqBuf, true, 0, host, nil); err != nil {
		return nil, openCLError("writing frequency buffer", err)
	}
	step := float32(duration / float64(n))
	if err := m.kernel.SetArgs(int32(n), int32(len(host)), step, float32(tone.Amplitude), freqBuf, outBuf); err != nil {
		return nil, openCLError("setting kernel arguments", err)
	}
	if _, err := m.queue.EnqueueNDRangeKernel(m.kernel, nil, []int{n}, nil, nil); err != nil {
		return nil, openCLError("enqueueing kernel", err)
	}
	result := make([]float32, n)
	if _, err := m.queue.EnqueueReadBufferFloat32(outBuf, true, 0, result, nil); err != nil {
		return nil, openCLError("reading output buffer", err)
	}
	out := make([]float64, n)
	for i, v := range result {
		out[i] = float64(v)
	}
	return out, nil
}

func (m *openCLMixer) Close() {
	if m.kernel != nil {
		m.kernel.Release()
		m.kernel = nil
	}
	if m.program != nil {
		m.program.Release()
		m.program = nil
	}
	if m.queue != nil {
		m.queue.Release()
		m.queue = nil
	}
	if m.context != nil {
		m.context.Release()
		m.context = nil
	}
}

func (m *openCLMixer) DeviceName() string {
	return m.deviceName
}
