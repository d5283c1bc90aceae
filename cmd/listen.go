package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/adaptune/constants"
	"github.com/jsphweid/adaptune/emit"
	"github.com/jsphweid/adaptune/engine"
	"github.com/jsphweid/adaptune/util"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	listenIn  int
	listenOut int
)

func init() {
	listenCmd.Flags().IntVar(&listenIn, "in", 0, "MIDI input port number")
	listenCmd.Flags().IntVar(&listenOut, "out", 0, "MIDI output port number")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Retunes live MIDI input",
	Long:  `Retunes live MIDI input`,
	Run: func(cmd *cobra.Command, args []string) {
		listen()
	},
}

// midiEmitter drives a synth directly: thru notes and a per-note pitch
// bend. Each sounding pitch gets its own channel (rotating over 1-15) so
// bends don't fight; channel 0 is left alone for hosts that merge.
type midiEmitter struct {
	send      func(midi.Message) error
	bendRange float64
	channels  map[int]uint8
	next      uint8
}

var _ emit.Emitter = (*midiEmitter)(nil)

func newMidiEmitter(send func(midi.Message) error) *midiEmitter {
	return &midiEmitter{
		send:      send,
		bendRange: constants.GetBendRange(),
		channels:  make(map[int]uint8),
	}
}

func (m *midiEmitter) channelFor(pitch int) uint8 {
	if ch, ok := m.channels[pitch]; ok {
		return ch
	}
	ch := 1 + m.next%15
	m.next++
	m.channels[pitch] = ch
	return ch
}

func (m *midiEmitter) NoteControl(pitch, velocity int) {
	key := uint8(pitch) & 0x7f
	if velocity > 0 {
		ch := m.channelFor(pitch)
		m.send(midi.NoteOn(ch, key, uint8(velocity)&0x7f))
		return
	}
	ch := m.channelFor(pitch)
	m.send(midi.NoteOff(ch, key))
	delete(m.channels, pitch)
}

func (m *midiEmitter) NoteMessage(pitch int, bend float64) {
	ch, ok := m.channels[pitch]
	if !ok {
		return
	}
	value := int(bend / m.bendRange * 8192)
	m.send(midi.Pitchbend(ch, int16(util.Clamp(value, -8192, 8191))))
}

func (m *midiEmitter) JustPitches(pitches []float64) {}

func (m *midiEmitter) EqualPitches(pitches []int) {}

func (m *midiEmitter) OffsetOctave(offsets [12]float64) {}

func (m *midiEmitter) OffsetList(offsets []float64) {}

func (m *midiEmitter) Done() {}

func listen() {
	defer midi.CloseDriver()

	in, err := midi.InPort(listenIn)
	if err != nil {
		fmt.Printf("can't find input port %v: %v\n", listenIn, err)
		return
	}
	out, err := midi.OutPort(listenOut)
	if err != nil {
		fmt.Printf("can't find output port %v: %v\n", listenOut, err)
		return
	}
	send, err := midi.SendTo(out)
	if err != nil {
		fmt.Printf("can't open output port %v: %v\n", listenOut, err)
		return
	}

	eng := engine.New(newMidiEmitter(send))

	// The engine has no internal locking; the driver callback and the
	// debounced printer are serialized here.
	var mu sync.Mutex
	d := debounce.New(75 * time.Millisecond)

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			mu.Lock()
			eng.NoteEvent(int(key), int(vel))
			mu.Unlock()
		case msg.GetNoteEnd(&ch, &key):
			mu.Lock()
			eng.NoteEvent(int(key), 0)
			mu.Unlock()
		case msg.GetControlChange(&ch, &key, &vel):
			// mod wheel scales correction intensity
			if key == 1 {
				mu.Lock()
				eng.SetIntensity(float64(vel) / 127)
				mu.Unlock()
			}
		default:
			// ignore
		}
		d(func() {
			mu.Lock()
			printSnapshot(eng)
			mu.Unlock()
		})
	})
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}
	defer stop()

	fmt.Printf("retuning %v -> %v\n", in, out)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
}

func printSnapshot(eng *engine.Engine) {
	snap := eng.Snapshot()
	if len(snap.Notes) == 0 {
		return
	}
	for _, n := range snap.Notes {
		fmt.Printf("%3d -> %9.4f (bend %+.4f)\n", n.Pitch, float64(n.Pitch)+n.Bend, n.Bend)
	}
	fmt.Println("---")
}
