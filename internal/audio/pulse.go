// Package audio lists Pulse output sinks and plays provider test clips.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
)

// Sink describes one Pulse output sink.
type Sink struct {
	ID          string
	Description string
	State       string
	Available   bool
	Muted       bool
	Default     bool
}

func newClient() (*pulse.Client, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("vtrans"),
		pulse.ClientApplicationIconName("audio-speakers"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	return client, nil
}

// ListSinks returns the Pulse output sinks with default/availability metadata.
func ListSinks(_ context.Context) ([]Sink, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	defaultSink, err := client.DefaultSink()
	if err != nil {
		return nil, fmt.Errorf("read default sink: %w", err)
	}
	defaultID := defaultSink.ID()

	var sinkInfos pulseproto.GetSinkInfoListReply
	if err := client.RawRequest(&pulseproto.GetSinkInfoList{}, &sinkInfos); err != nil {
		return nil, fmt.Errorf("list sinks: %w", err)
	}

	return sinksFromInfo(sinkInfos, defaultID), nil
}

func sinksFromInfo(infos pulseproto.GetSinkInfoListReply, defaultID string) []Sink {
	sinks := make([]Sink, 0, len(infos))
	for _, info := range infos {
		if info == nil {
			continue
		}
		sinks = append(sinks, Sink{
			ID:          info.SinkName,
			Description: info.Device,
			State:       sinkStateString(info.State),
			Available:   sinkAvailable(info),
			Muted:       info.Mute,
			Default:     info.SinkName == defaultID,
		})
	}
	return sinks
}

// PlayWAV plays a PCM s16le WAV file on the default sink and returns once
// the stream has drained or ctx ends.
func PlayWAV(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	clip, err := ParseWAV(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(clip.Data) == 0 {
		return fmt.Errorf("%s: wav has no samples", path)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	stream, err := client.NewPlayback(
		pulse.NewReader(endOfData{bytes.NewReader(clip.Data)}, pulseproto.FormatInt16LE),
		channelOption(clip.Channels),
		pulse.PlaybackSampleRate(clip.SampleRate),
		pulse.PlaybackMediaName("vtrans test clip"),
	)
	if err != nil {
		return fmt.Errorf("create pulse playback stream: %w", err)
	}
	defer stream.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		stream.Start()
		stream.Drain()
	}()

	select {
	case <-done:
		return stream.Error()
	case <-ctx.Done():
		stream.Stop()
		<-done
		return ctx.Err()
	}
}

func channelOption(channels int) pulse.PlaybackOption {
	if channels == 2 {
		return pulse.PlaybackStereo
	}
	return pulse.PlaybackMono
}

// endOfData maps io.EOF to the pulse end-of-stream marker.
type endOfData struct {
	r io.Reader
}

func (e endOfData) Read(b []byte) (int, error) {
	n, err := e.r.Read(b)
	if errors.Is(err, io.EOF) {
		return n, pulse.EndOfData
	}
	return n, err
}

// sinkStateString maps Pulse sink state constants to human-readable values.
func sinkStateString(state uint32) string {
	switch state {
	case 0:
		return "running"
	case 1:
		return "idle"
	case 2:
		return "suspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}

// sinkAvailable maps Pulse sink port availability to a simple boolean.
func sinkAvailable(sink *pulseproto.GetSinkInfoReply) bool {
	if sink == nil {
		return false
	}
	if len(sink.Ports) == 0 {
		return true
	}
	for _, port := range sink.Ports {
		if port.Name != sink.ActivePortName {
			continue
		}
		// PulseAudio values: unknown=0, no=1, yes=2.
		return port.Available == 0 || port.Available == 2
	}
	return true
}
