//go:build darwin

package beep

import (
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

var (
	malgoCtx  *malgo.AllocatedContext
	device    *malgo.Device
	cues      [2][]byte
	soundOnce sync.Once

	// Read from the audio callback.
	playing atomic.Pointer[[]byte]
	playPos atomic.Uint32
	playMu  sync.Mutex
)

// pcmBytes packs mono samples as little-endian S16.
func pcmBytes(samples []int16) []byte {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		buf[2*i] = byte(s)
		buf[2*i+1] = byte(s >> 8)
	}
	return buf
}

func initDevice() error {
	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.Playback.Format = malgo.FormatS16
	config.Playback.Channels = 1
	config.SampleRate = sampleRate

	var err error
	device, err = malgo.InitDevice(malgoCtx.Context, config, malgo.DeviceCallbacks{Data: dataCallback})
	return err
}

func initSound() {
	var err error
	malgoCtx, err = malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return
	}

	cues[cueTrigger] = pcmBytes(triggerSamples())
	cues[cueError] = pcmBytes(errorSamples())

	if err := initDevice(); err != nil {
		malgoCtx.Uninit()
		malgoCtx = nil
	}
}

func Init() {
	soundOnce.Do(initSound)
}

func dataCallback(out, _ []byte, frameCount uint32) {
	samples := playing.Load()
	want := frameCount * 2
	if samples == nil {
		clear(out)
		return
	}

	pos := playPos.Load()
	remaining := uint32(len(*samples)) - pos
	if remaining == 0 {
		playing.Store(nil)
		clear(out)
		return
	}

	n := min(want, remaining)
	copy(out[:n], (*samples)[pos:pos+n])
	playPos.Store(pos + n)
	clear(out[n:want])
}

func play(c cue) {
	soundOnce.Do(initSound)
	if malgoCtx == nil {
		return
	}
	samples := cues[c]

	playMu.Lock()
	defer playMu.Unlock()
	if device == nil {
		return
	}

	device.Stop()
	playPos.Store(0)
	playing.Store(&samples)

	if err := device.Start(); err != nil {
		// The device goes stale across sleep/wake; rebuild it once.
		device.Uninit()
		if err := initDevice(); err != nil {
			playing.Store(nil)
			return
		}
		if err := device.Start(); err != nil {
			playing.Store(nil)
		}
	}
}
